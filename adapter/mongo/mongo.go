// Package mongo provides the endb adapter for MongoDB, registered for the
// mongo:// and mongodb:// schemes. Entries are {key, value} documents in
// the configured collection, with a unique index on key. The database name
// comes from the URI path and defaults to "endb".
package mongo

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/endbase/endb/adapter"
)

const defaultDatabase = "endb"

func init() {
	open := func(ctx context.Context, cfg adapter.Config) (adapter.Adapter, error) {
		uri := cfg.URI
		// the driver insists on the long scheme
		if rest, ok := strings.CutPrefix(uri, "mongo://"); ok {
			uri = "mongodb://" + rest
		}
		return Open(ctx, uri, cfg.Collection)
	}
	adapter.Register("mongo", open)
	adapter.Register("mongodb", open)
}

type document struct {
	Key   string `bson:"key"`
	Value []byte `bson:"value"`
}

// Mongo implements adapter.Adapter over one collection.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ adapter.Adapter = (*Mongo)(nil)

// Open connects, verifies the server with a ping and ensures the unique
// key index. The returned adapter owns the client.
func Open(ctx context.Context, uri, collection string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	coll := client.Database(databaseName(uri)).Collection(collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &Mongo{client: client, coll: coll}, nil
}

func databaseName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return defaultDatabase
	}
	if name := strings.TrimPrefix(u.Path, "/"); name != "" {
		return name
	}
	return defaultDatabase
}

func (a *Mongo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc document
	err := a.coll.FindOne(ctx, bson.M{"key": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc.Value, true, nil
}

func (a *Mongo) Set(ctx context.Context, key string, value []byte) error {
	_, err := a.coll.UpdateOne(ctx,
		bson.M{"key": key},
		bson.M{"$set": bson.M{"key": key, "value": value}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (a *Mongo) Delete(ctx context.Context, key string) (bool, error) {
	res, err := a.coll.DeleteOne(ctx, bson.M{"key": key})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (a *Mongo) Clear(ctx context.Context, prefix string) error {
	_, err := a.coll.DeleteMany(ctx, prefixFilter(prefix))
	return err
}

func (a *Mongo) All(ctx context.Context, prefix string) ([]adapter.Entry, error) {
	cur, err := a.coll.Find(ctx, prefixFilter(prefix))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var entries []adapter.Entry
	for cur.Next(ctx) {
		var doc document
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		entries = append(entries, adapter.Entry{Key: doc.Key, Value: doc.Value})
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func prefixFilter(prefix string) bson.M {
	return bson.M{"key": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}}
}

// Close disconnects the client. Safe to call multiple times.
func (a *Mongo) Close(ctx context.Context) error {
	err := a.client.Disconnect(ctx)
	if errors.Is(err, mongo.ErrClientDisconnected) {
		return nil
	}
	return err
}
