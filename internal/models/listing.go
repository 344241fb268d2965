package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item is a single line entry within a listing or order.
type Item struct {
	ID       int     `bson:"id" json:"id"`
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Image    string  `bson:"image,omitempty" json:"image,omitempty"`
}

// Listing is a posted request for goods. A listing has no stored open/taken
// status: it is open exactly while no order references it.
type Listing struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Items        []Item             `bson:"items" json:"items"`
	Commission   float64            `bson:"commission" json:"commission"`
	DeliveryTime string             `bson:"deliveryTime" json:"deliveryTime"`
	Address      Address            `bson:"address" json:"address"`
	CreatorID    primitive.ObjectID `bson:"creatorId" json:"creatorId"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
