// Package store persists named snapshots of a social network.
//
// # Overview
//
// The network engine is purely in-memory. A [Store] saves a copy of a
// network under a name and rebuilds it later. Backends:
//
//   - [FileStore]: one JSON file per snapshot, for the CLI
//   - [RedisStore]: one key per snapshot plus an index set
//   - [MongoStore]: one document per snapshot
//   - [Neo4jStore]: people and friendships as graph nodes and relationships
//
// Every backend stores the same content: people in insertion order with
// their metadata, and friendships in creation order, so a loaded network
// lists everyone's friends in the same order as the saved one.
//
// # Usage
//
//	st, err := store.NewFileStore("")
//	if err != nil {
//	    return err
//	}
//	snap, err := st.Save(ctx, "demo", n)
//	...
//	n, err = st.Load(ctx, "demo")
//	if errors.Is(err, store.ErrSnapshotNotFound) {
//	    // no such snapshot
//	}
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/matzehuels/socialgraph/pkg/errors"
	sgio "github.com/matzehuels/socialgraph/pkg/io"
	"github.com/matzehuels/socialgraph/pkg/network"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNeo4j = "neo4j"
)

// ErrSnapshotNotFound is returned when no snapshot has the requested name.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot describes a saved network.
type Snapshot struct {
	ID          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	People      int       `json:"people" bson:"people"`
	Friendships int       `json:"friendships" bson:"friendships"`
	SelfLoops   bool      `json:"self_loops,omitempty" bson:"self_loops"`
	SavedAt     time.Time `json:"saved_at" bson:"saved_at"`
}

// String returns e.g. "demo (6 people, 8 friendships)".
func (s Snapshot) String() string {
	return fmt.Sprintf("%s (%d people, %d friendships)", s.Name, s.People, s.Friendships)
}

// Store saves and loads named network snapshots.
//
// Save replaces any snapshot with the same name. Load and Delete return an
// error wrapping ErrSnapshotNotFound for unknown names.
type Store interface {
	Save(ctx context.Context, name string, n *network.Network) (Snapshot, error)
	Load(ctx context.Context, name string) (*network.Network, error)
	List(ctx context.Context) ([]Snapshot, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

// record is the persisted form of a snapshot shared by the document
// backends.
type record struct {
	Snapshot `bson:",inline"`
	Roster   sgio.Roster `json:"roster" bson:"roster"`
}

// newRecord validates name and captures n.
func newRecord(name string, n *network.Network) (record, error) {
	if err := apperrors.ValidateSnapshotName(name); err != nil {
		return record{}, err
	}
	return record{
		Snapshot: Snapshot{
			ID:          uuid.NewString(),
			Name:        name,
			People:      n.Len(),
			Friendships: n.FriendshipCount(),
			SelfLoops:   n.AllowsSelfLoops(),
			SavedAt:     time.Now().UTC(),
		},
		Roster: sgio.FromNetwork(n),
	}, nil
}

// network rebuilds the saved network. Any rejected entry, or a rebuilt
// network that fails validation, means the stored data is corrupt.
func (r record) network() (*network.Network, error) {
	n, err := sgio.Restore(r.Roster, network.WithSelfLoops(r.SelfLoops))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStorage, err, "snapshot %q is corrupt", r.Name)
	}
	return n, nil
}

// notFound returns the error for a missing snapshot.
func notFound(name string) error {
	return apperrors.Wrap(apperrors.ErrCodeSnapshotNotFound, ErrSnapshotNotFound, "snapshot %q not found", name)
}

// storageError wraps a backend failure.
func storageError(backend, op string, err error) error {
	return apperrors.Wrap(apperrors.ErrCodeStorage, err, "%s: %s", backend, op)
}

// sortSnapshots orders snapshots by name.
func sortSnapshots(s []Snapshot) {
	slices.SortFunc(s, func(a, b Snapshot) int { return strings.Compare(a.Name, b.Name) })
}

// Config selects and configures a backend for [Open].
type Config struct {
	Backend string // file, redis, mongo or neo4j; empty means file

	Dir string // file: snapshot directory, empty for the default

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string
}

// Open connects to the configured backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendFile:
		return NewFileStore(cfg.Dir)
	case BackendRedis:
		return NewRedisStore(ctx, RedisConfig{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	case BackendMongo:
		return NewMongoStore(ctx, MongoConfig{URI: cfg.MongoURI, Database: cfg.MongoDatabase, Collection: cfg.MongoCollection})
	case BackendNeo4j:
		return NewNeo4jStore(ctx, Neo4jConfig{URI: cfg.Neo4jURI, User: cfg.Neo4jUser, Password: cfg.Neo4jPassword, Database: cfg.Neo4jDatabase})
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown store backend %q", cfg.Backend)
}
