package ledger

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gofermarket/internal/models"
)

// Ledger owns the listing/order lifecycle. A listing is open while no order
// references it; accepting a listing creates the single order allowed
// against it, and cancelling that order reopens the listing.
type Ledger struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Ledger {
	return &Ledger{db: db}
}

// OpenListing is a feed entry with its creator resolved.
type OpenListing struct {
	models.Listing `bson:",inline"`
	Creator        *models.PublicUser `json:"creator,omitempty"`
}

// AcceptedOrderInfo is the acceptance context attached to an owned listing.
type AcceptedOrderInfo struct {
	ID         primitive.ObjectID `json:"id"`
	Status     string             `json:"status"`
	Total      float64            `json:"total"`
	CreatedAt  time.Time          `json:"createdAt"`
	AcceptedBy *models.PublicUser `json:"acceptedBy,omitempty"`
}

// OwnedListing is a listing as seen by its creator, with the active order
// attached when someone has taken it.
type OwnedListing struct {
	models.Listing `bson:",inline"`
	Order          *AcceptedOrderInfo `json:"order,omitempty"`
}

// FulfillerOrder is an order as seen by its fulfiller, with the requesting
// user resolved.
type FulfillerOrder struct {
	models.Order `bson:",inline"`
	Requester    *models.PublicUser `json:"user,omitempty"`
}

// CreateListing validates the input and inserts a new listing owned by
// creatorID. The listing starts with zero orders and is therefore open.
func (l *Ledger) CreateListing(ctx context.Context, creatorID primitive.ObjectID, input ListingInput) (models.Listing, error) {
	if err := ValidateListingInput(input); err != nil {
		return models.Listing{}, err
	}

	count, err := l.db.Collection("users").CountDocuments(ctx, bson.M{"_id": creatorID})
	if err != nil {
		return models.Listing{}, err
	}
	if count == 0 {
		return models.Listing{}, ErrUnauthorized
	}

	listing := models.Listing{
		Items:        input.Items,
		Commission:   input.Commission,
		DeliveryTime: input.DeliveryTime,
		Address:      input.Address,
		CreatorID:    creatorID,
		CreatedAt:    time.Now(),
	}

	res, err := l.db.Collection("listings").InsertOne(ctx, listing)
	if err != nil {
		return models.Listing{}, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		listing.ID = id
	}
	return listing, nil
}

// OpenListings returns listings with zero orders, newest first. Pass
// limit <= 0 to return the whole feed.
func (l *Ledger) OpenListings(ctx context.Context, skip, limit int64) ([]OpenListing, error) {
	taken, err := l.db.Collection("orders").Distinct(ctx, "listingId", bson.M{})
	if err != nil {
		return nil, err
	}

	filter := bson.M{}
	if len(taken) > 0 {
		filter["_id"] = bson.M{"$nin": taken}
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		findOptions.SetSkip(skip).SetLimit(limit)
	}

	cursor, err := l.db.Collection("listings").Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var listings []models.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}

	creatorIDs := make([]primitive.ObjectID, 0, len(listings))
	for _, listing := range listings {
		creatorIDs = append(creatorIDs, listing.CreatorID)
	}
	creators, err := l.publicUsers(ctx, creatorIDs)
	if err != nil {
		return nil, err
	}

	feed := make([]OpenListing, 0, len(listings))
	for _, listing := range listings {
		entry := OpenListing{Listing: listing}
		if creator, ok := creators[listing.CreatorID]; ok {
			entry.Creator = &creator
		}
		feed = append(feed, entry)
	}
	return feed, nil
}

// MyListings returns every listing owned by creatorID, newest first,
// regardless of order state. Listings taken by an active order carry that
// order and its accepting user.
func (l *Ledger) MyListings(ctx context.Context, creatorID primitive.ObjectID) ([]OwnedListing, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := l.db.Collection("listings").Find(ctx, bson.M{"creatorId": creatorID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var listings []models.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return []OwnedListing{}, nil
	}

	listingIDs := make([]primitive.ObjectID, 0, len(listings))
	for _, listing := range listings {
		listingIDs = append(listingIDs, listing.ID)
	}

	orderCursor, err := l.db.Collection("orders").Find(ctx, bson.M{"listingId": bson.M{"$in": listingIDs}})
	if err != nil {
		return nil, err
	}
	defer orderCursor.Close(ctx)

	var orders []models.Order
	if err := orderCursor.All(ctx, &orders); err != nil {
		return nil, err
	}

	orderByListing := make(map[primitive.ObjectID]models.Order, len(orders))
	fulfillerIDs := make([]primitive.ObjectID, 0, len(orders))
	for _, order := range orders {
		if !order.Active() {
			continue
		}
		if _, exists := orderByListing[order.ListingID]; exists {
			continue
		}
		orderByListing[order.ListingID] = order
		fulfillerIDs = append(fulfillerIDs, order.AcceptedByID)
	}

	fulfillers, err := l.publicUsers(ctx, fulfillerIDs)
	if err != nil {
		return nil, err
	}

	owned := make([]OwnedListing, 0, len(listings))
	for _, listing := range listings {
		entry := OwnedListing{Listing: listing}
		if order, ok := orderByListing[listing.ID]; ok {
			info := AcceptedOrderInfo{
				ID:        order.ID,
				Status:    order.Status,
				Total:     order.Total,
				CreatedAt: order.CreatedAt,
			}
			if fulfiller, ok := fulfillers[order.AcceptedByID]; ok {
				info.AcceptedBy = &fulfiller
			}
			entry.Order = &info
		}
		owned = append(owned, entry)
	}
	return owned, nil
}

// DeleteListing removes a listing owned by requesterID. Lookups are scoped
// by owner, so a listing that exists but belongs to someone else reports
// ErrNotFound rather than revealing itself. A listing with an active order
// cannot be deleted; the active-order check and the delete run in one
// transaction so a concurrent accept cannot slip an order in between and
// orphan it.
func (l *Ledger) DeleteListing(ctx context.Context, requesterID, listingID primitive.ObjectID) error {
	session, err := l.db.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		var listing models.Listing
		err := l.db.Collection("listings").FindOne(sessCtx, bson.M{
			"_id":       listingID,
			"creatorId": requesterID,
		}).Decode(&listing)
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}

		active, err := l.db.Collection("orders").CountDocuments(sessCtx, bson.M{
			"listingId": listingID,
			"status": bson.M{"$in": []string{
				models.OrderStatusAccepted,
				models.OrderStatusInProgress,
			}},
		})
		if err != nil {
			return nil, err
		}
		if active > 0 {
			return nil, ErrListingTaken
		}

		_, err = l.db.Collection("listings").DeleteOne(sessCtx, bson.M{"_id": listingID})
		return nil, err
	})
	return err
}

// AcceptListing creates the order that takes listingID off the open feed.
// The total and all order fields are computed from the listing as stored,
// never from caller input. The zero-orders re-check runs inside the
// transaction and the unique listingId index backstops it, so a lost race
// between two fulfillers surfaces as ErrListingTaken.
func (l *Ledger) AcceptListing(ctx context.Context, fulfillerID, listingID primitive.ObjectID) (models.Order, error) {
	count, err := l.db.Collection("users").CountDocuments(ctx, bson.M{"_id": fulfillerID})
	if err != nil {
		return models.Order{}, err
	}
	if count == 0 {
		return models.Order{}, ErrUnauthorized
	}

	session, err := l.db.Client().StartSession()
	if err != nil {
		return models.Order{}, err
	}
	defer session.EndSession(ctx)

	var order models.Order
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		var listing models.Listing
		err := l.db.Collection("listings").FindOne(sessCtx, bson.M{"_id": listingID}).Decode(&listing)
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}

		if listing.CreatorID == fulfillerID {
			return nil, ErrUnauthorized
		}

		existing, err := l.db.Collection("orders").CountDocuments(sessCtx, bson.M{"listingId": listingID})
		if err != nil {
			return nil, err
		}
		if existing > 0 {
			return nil, ErrListingTaken
		}

		order = models.Order{
			ListingID:    listing.ID,
			Items:        listing.Items,
			Commission:   listing.Commission,
			Total:        OrderTotal(listing.Items, listing.Commission),
			DeliveryTime: listing.DeliveryTime,
			Address:      listing.Address,
			UserID:       listing.CreatorID,
			AcceptedByID: fulfillerID,
			Status:       models.OrderStatusAccepted,
			CreatedAt:    time.Now(),
		}

		res, err := l.db.Collection("orders").InsertOne(sessCtx, order)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, ErrListingTaken
			}
			return nil, err
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			order.ID = id
		}
		return nil, nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// OrdersForFulfiller returns the orders accepted by fulfillerID, newest
// first, with the requesting user resolved.
func (l *Ledger) OrdersForFulfiller(ctx context.Context, fulfillerID primitive.ObjectID) ([]FulfillerOrder, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := l.db.Collection("orders").Find(ctx, bson.M{"acceptedById": fulfillerID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}

	requesterIDs := make([]primitive.ObjectID, 0, len(orders))
	for _, order := range orders {
		requesterIDs = append(requesterIDs, order.UserID)
	}
	requesters, err := l.publicUsers(ctx, requesterIDs)
	if err != nil {
		return nil, err
	}

	result := make([]FulfillerOrder, 0, len(orders))
	for _, order := range orders {
		entry := FulfillerOrder{Order: order}
		if requester, ok := requesters[order.UserID]; ok {
			entry.Requester = &requester
		}
		result = append(result, entry)
	}
	return result, nil
}

// CancelOrder deletes an order. Only the fulfiller who accepted it may
// cancel; the originating listing returns to the open feed as a result.
func (l *Ledger) CancelOrder(ctx context.Context, requesterID, orderID primitive.ObjectID) error {
	var order models.Order
	err := l.db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if order.AcceptedByID != requesterID {
		return ErrUnauthorized
	}

	_, err = l.db.Collection("orders").DeleteOne(ctx, bson.M{"_id": orderID})
	return err
}

func (l *Ledger) publicUsers(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.PublicUser, error) {
	result := make(map[primitive.ObjectID]models.PublicUser, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	cursor, err := l.db.Collection("users").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	for _, user := range users {
		result[user.ID] = user.Public()
	}
	return result, nil
}
