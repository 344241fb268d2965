package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Cancellation deletes the order instead of transitioning
// it, so no terminal status value is stored.
const (
	OrderStatusAccepted   = "accepted"
	OrderStatusInProgress = "in-progress"
)

// Order is a listing accepted by a fulfiller. Items, commission and address
// are snapshots taken at acceptance time and do not track the listing.
type Order struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ListingID    primitive.ObjectID `bson:"listingId" json:"listingId"`
	Items        []Item             `bson:"items" json:"items"`
	Commission   float64            `bson:"commission" json:"commission"`
	Total        float64            `bson:"total" json:"total"`
	DeliveryTime string             `bson:"deliveryTime" json:"deliveryTime"`
	Address      Address            `bson:"address" json:"address"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	AcceptedByID primitive.ObjectID `bson:"acceptedById" json:"acceptedById"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// Active reports whether the order blocks deletion of its listing.
func (o Order) Active() bool {
	return o.Status == OrderStatusAccepted || o.Status == OrderStatusInProgress
}
