package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	apperrors "github.com/matzehuels/socialgraph/pkg/errors"
	sgio "github.com/matzehuels/socialgraph/pkg/io"
	"github.com/matzehuels/socialgraph/pkg/network"
)

// Neo4jConfig configures a Neo4j snapshot store.
type Neo4jConfig struct {
	URI      string
	User     string
	Password string
	Database string // empty for the server default
}

// Neo4jStore writes a snapshot as (:Snapshot) plus one (:Person) node per
// person and a FRIENDS_WITH relationship per friendship, all tagged with
// the snapshot name in their graph property. A pos property keeps insertion
// order. The stored graph can be queried directly with Cypher:
//
//	MATCH p = shortestPath((a:Person {graph: "demo", name: "Jordan"})-[:FRIENDS_WITH*]-(b:Person {graph: "demo", name: "Riley"}))
//	RETURN [n IN nodes(p) | n.name]
type Neo4jStore struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewNeo4jStore connects to Neo4j and verifies connectivity.
func NewNeo4jStore(ctx context.Context, cfg Neo4jConfig) (*Neo4jStore, error) {
	if err := apperrors.ValidateURL(cfg.URI, "neo4j", "neo4j+s", "bolt", "bolt+s"); err != nil {
		return nil, err
	}
	auth := neo4j.NoAuth()
	if cfg.User != "" {
		auth = neo4j.BasicAuth(cfg.User, cfg.Password, "")
	}
	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth)
	if err != nil {
		return nil, storageError(BackendNeo4j, "create driver", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, storageError(BackendNeo4j, "connect", err)
	}
	return &Neo4jStore{driver: driver, database: cfg.Database}, nil
}

func (s *Neo4jStore) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: mode, DatabaseName: s.database})
}

// Save replaces the snapshot graph in a single write transaction.
func (s *Neo4jStore) Save(ctx context.Context, name string, n *network.Network) (Snapshot, error) {
	rec, err := newRecord(name, n)
	if err != nil {
		return Snapshot{}, err
	}
	params, err := neo4jParams(rec)
	if err != nil {
		return Snapshot{}, err
	}

	sess := s.session(ctx, neo4j.AccessModeWrite)
	defer sess.Close(ctx)

	_, err = sess.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		statements := []string{
			`MATCH (p:Person {graph: $graph}) DETACH DELETE p`,
			`MATCH (s:Snapshot {name: $graph}) DELETE s`,
			`CREATE (:Snapshot {id: $id, name: $graph, people: $count_people,
			   friendships: $count_friendships, self_loops: $self_loops, saved_at: $saved_at})`,
			`UNWIND $people AS p
			 CREATE (:Person {graph: $graph, name: p.name, pos: p.pos, meta: p.meta})`,
			`UNWIND $edges AS e
			 MATCH (a:Person {graph: $graph, name: e.a}), (b:Person {graph: $graph, name: e.b})
			 CREATE (a)-[:FRIENDS_WITH {pos: e.pos}]->(b)`,
		}
		for _, cypher := range statements {
			if _, err := tx.Run(ctx, cypher, params); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return Snapshot{}, storageError(BackendNeo4j, "save "+name, err)
	}
	return rec.Snapshot, nil
}

// Load reads the snapshot graph back in insertion order.
func (s *Neo4jStore) Load(ctx context.Context, name string) (*network.Network, error) {
	if err := apperrors.ValidateSnapshotName(name); err != nil {
		return nil, err
	}
	sess := s.session(ctx, neo4j.AccessModeRead)
	defer sess.Close(ctx)

	out, err := sess.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		params := map[string]any{"graph": name}
		head, err := collect(ctx, tx, `MATCH (s:Snapshot {name: $graph})
			RETURN s.id AS id, s.name AS name, s.people AS people, s.friendships AS friendships,
			       s.self_loops AS self_loops, s.saved_at AS saved_at`, params)
		if err != nil || len(head) == 0 {
			return nil, err
		}
		people, err := collect(ctx, tx, `MATCH (p:Person {graph: $graph})
			RETURN p.name AS name, p.meta AS meta ORDER BY p.pos`, params)
		if err != nil {
			return nil, err
		}
		edges, err := collect(ctx, tx, `MATCH (a:Person {graph: $graph})-[r:FRIENDS_WITH]->(b:Person {graph: $graph})
			RETURN a.name AS a, b.name AS b ORDER BY r.pos`, params)
		if err != nil {
			return nil, err
		}
		return fromNeo4jRows(head[0], people, edges)
	})
	if err != nil {
		return nil, storageError(BackendNeo4j, "load "+name, err)
	}
	if out == nil {
		return nil, notFound(name)
	}
	return out.(record).network()
}

// List returns snapshot headers ordered by name.
func (s *Neo4jStore) List(ctx context.Context) ([]Snapshot, error) {
	sess := s.session(ctx, neo4j.AccessModeRead)
	defer sess.Close(ctx)

	out, err := sess.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		rows, err := collect(ctx, tx, `MATCH (s:Snapshot)
			RETURN s.id AS id, s.name AS name, s.people AS people, s.friendships AS friendships,
			       s.self_loops AS self_loops, s.saved_at AS saved_at
			ORDER BY s.name`, nil)
		if err != nil {
			return nil, err
		}
		snaps := make([]Snapshot, 0, len(rows))
		for _, row := range rows {
			snaps = append(snaps, snapshotFromRow(row))
		}
		return snaps, nil
	})
	if err != nil {
		return nil, storageError(BackendNeo4j, "list", err)
	}
	return out.([]Snapshot), nil
}

// Delete removes the snapshot node and every person tagged with its name.
func (s *Neo4jStore) Delete(ctx context.Context, name string) error {
	if err := apperrors.ValidateSnapshotName(name); err != nil {
		return err
	}
	sess := s.session(ctx, neo4j.AccessModeWrite)
	defer sess.Close(ctx)

	out, err := sess.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		params := map[string]any{"graph": name}
		rows, err := collect(ctx, tx, `MATCH (s:Snapshot {name: $graph}) DELETE s RETURN count(*) AS n`, params)
		if err != nil {
			return nil, err
		}
		if _, err := tx.Run(ctx, `MATCH (p:Person {graph: $graph}) DETACH DELETE p`, params); err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return int64(0), nil
		}
		return int64Prop(rows[0], "n"), nil
	})
	if err != nil {
		return storageError(BackendNeo4j, "delete "+name, err)
	}
	if out.(int64) == 0 {
		return notFound(name)
	}
	return nil
}

// Close closes the driver.
func (s *Neo4jStore) Close() error {
	return s.driver.Close(context.Background())
}

// collect runs a query and returns its rows as maps.
func collect(ctx context.Context, tx neo4j.ManagedTransaction, cypher string, params map[string]any) ([]map[string]any, error) {
	res, err := tx.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	records, err := res.Collect(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, len(records))
	for i, r := range records {
		rows[i] = r.AsMap()
	}
	return rows, nil
}

// neo4jParams flattens a record into query parameters. Metadata is stored
// as a JSON string because Neo4j properties cannot hold nested maps.
func neo4jParams(rec record) (map[string]any, error) {
	people := make([]map[string]any, len(rec.Roster.People))
	for i, p := range rec.Roster.People {
		meta := ""
		if len(p.Meta) > 0 {
			data, err := json.Marshal(p.Meta)
			if err != nil {
				return nil, fmt.Errorf("encode metadata of %s: %w", p.ID, err)
			}
			meta = string(data)
		}
		people[i] = map[string]any{"name": p.ID, "pos": int64(i), "meta": meta}
	}
	edges := make([]map[string]any, len(rec.Roster.Friendships))
	for i, f := range rec.Roster.Friendships {
		edges[i] = map[string]any{"a": f.A, "b": f.B, "pos": int64(i)}
	}
	return map[string]any{
		"graph":             rec.Name,
		"id":                rec.ID,
		"count_people":      int64(rec.People),
		"count_friendships": int64(rec.Friendships),
		"self_loops":        rec.SelfLoops,
		"saved_at":          rec.SavedAt,
		"people":            people,
		"edges":             edges,
	}, nil
}

// fromNeo4jRows reassembles a record from query rows.
func fromNeo4jRows(head map[string]any, people, edges []map[string]any) (record, error) {
	rec := record{Snapshot: snapshotFromRow(head)}
	rec.Roster.People = make([]sgio.Person, 0, len(people))
	for _, row := range people {
		p := sgio.Person{ID: strProp(row, "name")}
		if raw := strProp(row, "meta"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &p.Meta); err != nil {
				return record{}, fmt.Errorf("decode metadata of %s: %w", p.ID, err)
			}
		}
		rec.Roster.People = append(rec.Roster.People, p)
	}
	rec.Roster.Friendships = make([]sgio.Friendship, 0, len(edges))
	for _, row := range edges {
		rec.Roster.Friendships = append(rec.Roster.Friendships, sgio.Friendship{
			A: strProp(row, "a"),
			B: strProp(row, "b"),
		})
	}
	return rec, nil
}

func snapshotFromRow(row map[string]any) Snapshot {
	s := Snapshot{
		ID:          strProp(row, "id"),
		Name:        strProp(row, "name"),
		People:      int(int64Prop(row, "people")),
		Friendships: int(int64Prop(row, "friendships")),
	}
	s.SelfLoops, _ = row["self_loops"].(bool)
	s.SavedAt, _ = row["saved_at"].(time.Time)
	return s
}

func strProp(row map[string]any, key string) string {
	v, _ := row[key].(string)
	return v
}

func int64Prop(row map[string]any, key string) int64 {
	v, _ := row[key].(int64)
	return v
}

var _ Store = (*Neo4jStore)(nil)
