package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}
	log.Println("EnsureUserIndexes: email_unique index created")
	return nil
}

func EnsureListingIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("listings").Indexes()

	creatorIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "creatorId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("creatorId_createdAt"),
	}

	log.Println("EnsureListingIndexes: creating creatorId_createdAt index")
	_, err := indexes.CreateOne(ctx, creatorIndex)
	if err != nil {
		log.Println("EnsureListingIndexes: creator index error:", err)
		return err
	}
	log.Println("EnsureListingIndexes: creatorId_createdAt index created")
	return nil
}

// EnsureOrderIndexes creates the order indexes. The unique listingId index
// is load-bearing: it is what makes two concurrent accepts of the same
// listing impossible even if both pass the zero-orders check.
func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	listingIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "listingId", Value: 1}},
		Options: options.Index().
			SetName("listingId_unique").
			SetUnique(true),
	}

	log.Println("EnsureOrderIndexes: creating listingId_unique index")
	if _, err := indexes.CreateOne(ctx, listingIndex); err != nil {
		log.Println("EnsureOrderIndexes: listingId index error:", err)
		return err
	}

	fulfillerIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "acceptedById", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("acceptedById_createdAt"),
	}

	log.Println("EnsureOrderIndexes: creating acceptedById_createdAt index")
	if _, err := indexes.CreateOne(ctx, fulfillerIndex); err != nil {
		log.Println("EnsureOrderIndexes: acceptedById index error:", err)
		return err
	}

	log.Println("EnsureOrderIndexes: order indexes created")
	return nil
}
