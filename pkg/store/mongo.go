package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/matzehuels/socialgraph/pkg/errors"
	"github.com/matzehuels/socialgraph/pkg/network"
)

// Defaults for [MongoConfig].
const (
	DefaultMongoDatabase   = "socialgraph"
	DefaultMongoCollection = "snapshots"
)

// MongoConfig configures a MongoDB snapshot store.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MongoStore keeps one document per snapshot, unique by name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB, pings the primary and ensures the
// unique name index exists.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if err := apperrors.ValidateURL(cfg.URI, "mongodb", "mongodb+srv"); err != nil {
		return nil, err
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, storageError(BackendMongo, "connect", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, storageError(BackendMongo, "ping", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, storageError(BackendMongo, "create index", err)
	}
	return &MongoStore{client: client, coll: coll}, nil
}

// Save upserts the snapshot document.
func (s *MongoStore) Save(ctx context.Context, name string, n *network.Network) (Snapshot, error) {
	rec, err := newRecord(name, n)
	if err != nil {
		return Snapshot{}, err
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"name": name}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return Snapshot{}, storageError(BackendMongo, "save "+name, err)
	}
	return rec.Snapshot, nil
}

// Load fetches and rebuilds a snapshot.
func (s *MongoStore) Load(ctx context.Context, name string) (*network.Network, error) {
	if err := apperrors.ValidateSnapshotName(name); err != nil {
		return nil, err
	}
	var rec record
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, storageError(BackendMongo, "load "+name, err)
	}
	return rec.network()
}

// List returns snapshot headers ordered by name, without their rosters.
func (s *MongoStore) List(ctx context.Context) ([]Snapshot, error) {
	opts := options.Find().
		SetProjection(bson.M{"roster": 0}).
		SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storageError(BackendMongo, "list", err)
	}
	out := []Snapshot{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storageError(BackendMongo, "list", err)
	}
	return out, nil
}

// Delete removes a snapshot document.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := apperrors.ValidateSnapshotName(name); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return storageError(BackendMongo, "delete "+name, err)
	}
	if res.DeletedCount == 0 {
		return notFound(name)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
