package database

import (
	"context"
	"log"
	"time"

	"bookingflow/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

// InitDB initializes the MongoDB connection.
func InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("failed to ping MongoDB: %v", err)
	}
	MongoClient = client
	log.Println("Connected to MongoDB successfully!")
}

// CacheCollection returns the collection backing the Mongo cache store. With
// a positive retention, documents untouched for that long are expired by a
// TTL index on updatedAt.
func CacheCollection(ctx context.Context, retention time.Duration) (*mongo.Collection, error) {
	coll := MongoClient.Database(config.AppConfig.MongoDatabase).Collection(config.AppConfig.MongoCacheCollection)
	if retention <= 0 {
		return coll, nil
	}
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "updatedAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(retention / time.Second)),
	})
	if err != nil {
		return nil, err
	}
	return coll, nil
}
