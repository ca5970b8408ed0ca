package schema

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDBIndexer ensures the indexes every mongo-backed collection
// relies on. It connects with its own short-lived client so it can run
// from process start-up or from test set-up.
type MongoDBIndexer struct {
	connURI  string
	database string
}

func NewMongoDBIndexer(connURI, database string) *MongoDBIndexer {
	return &MongoDBIndexer{
		connURI:  connURI,
		database: database,
	}
}

// IndexAll creates the unique url index on jobs (the bulk-import dedup
// key) and the unique id index on resources.
func (i *MongoDBIndexer) IndexAll() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(i.connURI))
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	db := client.Database(i.database)

	if _, err := db.Collection(JobCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"url": 1},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	if _, err := db.Collection(ResourceCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"id": 1},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	if _, err := db.Collection(JobCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.M{"created_at": -1},
	}); err != nil {
		return err
	}

	return nil
}
