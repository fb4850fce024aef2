package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/griddeck/griddeck/pkg/observability"
)

// MongoConfig configures the MongoDB backend.
type MongoConfig struct {
	// URI is the MongoDB connection string.
	URI string

	// Database name. Defaults to "griddeck".
	Database string

	// Collection name. Defaults to "layouts".
	Collection string

	// Key identifies the dashboard document. Defaults to "default".
	Key string
}

// mongoRecord is the stored document shape.
type mongoRecord struct {
	ID        string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoBackend persists the layout as a single MongoDB document.
type MongoBackend struct {
	client *mongo.Client
	coll   *mongo.Collection
	key    string
}

// NewMongoBackend connects to MongoDB and verifies the connection.
func NewMongoBackend(ctx context.Context, cfg MongoConfig) (*MongoBackend, error) {
	if cfg.Database == "" {
		cfg.Database = "griddeck"
	}
	if cfg.Collection == "" {
		cfg.Collection = "layouts"
	}
	if cfg.Key == "" {
		cfg.Key = "default"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoBackend{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		key:    cfg.Key,
	}, nil
}

// Load reads the dashboard document.
func (b *MongoBackend) Load(ctx context.Context) ([]byte, error) {
	start := time.Now()
	var rec mongoRecord
	err := b.coll.FindOne(ctx, bson.M{"_id": b.key}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		err = ErrNoRecord
	}
	observability.Persistence().OnLoad(b.Name(), len(rec.Data), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return rec.Data, nil
}

// Store upserts the dashboard document.
func (b *MongoBackend) Store(ctx context.Context, data []byte) error {
	start := time.Now()
	rec := mongoRecord{ID: b.key, Data: data, UpdatedAt: time.Now()}
	_, err := b.coll.ReplaceOne(ctx, bson.M{"_id": b.key}, rec, options.Replace().SetUpsert(true))
	observability.Persistence().OnWrite(b.Name(), len(data), time.Since(start), err)
	return err
}

// Name identifies the backend in logs and hooks.
func (b *MongoBackend) Name() string { return "mongo" }

// Close disconnects from MongoDB.
func (b *MongoBackend) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return b.client.Disconnect(ctx)
}

// Ensure MongoBackend implements Backend.
var _ Backend = (*MongoBackend)(nil)
