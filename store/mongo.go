package store

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	mongoLogPrefix = "mongo"
	defaultTimeout = 5 * time.Second
)

// MongoStore is the set of stores served by the mongo backend.
type MongoStore interface {
	Resource
	Job
}

type mongoDB struct {
	client   *mongo.Client
	database string
}

// NewMongoStore returns a MongoStore backed by the given client and
// database name.
func NewMongoStore(client *mongo.Client, database string) MongoStore {
	return &mongoDB{
		client:   client,
		database: database,
	}
}
