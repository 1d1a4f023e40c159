package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoCollection = "snapshots"

type mongoRecord struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Mongo keeps one document per key in the snapshots collection
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongo wraps a connected client. Close disconnects it.
func NewMongo(client *mongo.Client, databaseName string) *Mongo {
	return &Mongo{
		client:     client,
		collection: client.Database(databaseName).Collection(mongoCollection),
	}
}

func (m *Mongo) Get(ctx context.Context, key string) ([]byte, error) {
	var rec mongoRecord
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return rec.Value, nil
}

func (m *Mongo) Put(ctx context.Context, key string, value []byte) error {
	rec := mongoRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": key}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (m *Mongo) Delete(ctx context.Context, key string) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
