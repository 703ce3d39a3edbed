// internal/database/indexes.go
package database

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique indexes the data model relies on:
// lotID and transactionID must never repeat, a farm registers once, and
// inventory has one row per (lotID, facilityID). Safe to run on every
// startup; CreateOne on an existing index is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := []struct {
		collection string
		keys       bson.D
	}{
		{"coffee_lots", bson.D{{Key: "lotID", Value: 1}}},
		{"payments", bson.D{{Key: "transactionID", Value: 1}}},
		{"farmers", bson.D{{Key: "farmID", Value: 1}}},
		{"inventory", bson.D{{Key: "lotID", Value: 1}, {Key: "facilityID", Value: 1}}},
	}

	for _, idx := range indexes {
		_, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    idx.keys,
			Options: unique,
		})
		if err != nil {
			return err
		}
	}

	log.Println("Unique indexes ensured.")
	return nil
}
