package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// MongoCollection is the collection holding one document per key.
const MongoCollection = "records"

type document struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// Mongo stores collections as documents in a MongoDB collection.
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
}

var _ Gateway = (*Mongo)(nil)

// OpenMongo connects to MongoDB and verifies the connection.
//
// The deployment must be a replica set, SetMany commits through a transaction.
func OpenMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info().Str("database", database).Msg("connected to MongoDB")
	return &Mongo{
		client:     client,
		collection: client.Database(database).Collection(MongoCollection),
	}, nil
}

func (m *Mongo) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	var doc document
	err := m.collection.FindOne(ctx, bson.M{"_id": string(key)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, mongoError(err)
	}

	return []byte(doc.Value), true, nil
}

func (m *Mongo) Set(ctx context.Context, key Key, value []byte) error {
	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": string(key)}, newDocument(key, value), options.Replace().SetUpsert(true))
	return mongoError(err)
}

// SetMany writes all values with one bulk write inside a transaction.
// Transactions need a replica set or a sharded cluster, a standalone server rejects them.
func (m *Mongo) SetMany(ctx context.Context, values map[Key][]byte) error {
	keys := maps.Keys(values)
	slices.Sort(keys)

	writes := make([]mongo.WriteModel, 0, len(keys))
	for _, k := range keys {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": string(k)}).
			SetReplacement(newDocument(k, values[k])).
			SetUpsert(true))
	}

	err := m.client.UseSession(ctx, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}

		if _, err := m.collection.BulkWrite(sc, writes, options.BulkWrite().SetOrdered(true)); err != nil {
			_ = sc.AbortTransaction(context.Background())
			return err
		}

		return sc.CommitTransaction(sc)
	})
	return mongoError(err)
}

func (m *Mongo) Ping(ctx context.Context) error {
	return mongoError(m.client.Ping(ctx, nil))
}

func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return m.client.Disconnect(ctx)
}

func newDocument(key Key, value []byte) document {
	return document{
		Key:       string(key),
		Value:     string(value),
		UpdatedAt: time.Now(),
	}
}

func mongoError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrClientDisconnected) || mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		log.Error().Msgf("%T: %v", err, err.Error())
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return err
}
