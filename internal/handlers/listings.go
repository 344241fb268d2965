package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"gofermarket/internal/ledger"
	"gofermarket/internal/models"
)

type listingItemRequest struct {
	ID       int     `json:"id"`
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity" binding:"required"`
	Image    string  `json:"image"`
}

type listingAddressRequest struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	HouseNo string `json:"houseNo" binding:"required"`
	RoomNo  string `json:"roomNo"`
}

type createListingRequest struct {
	Items        []listingItemRequest  `json:"items" binding:"required"`
	Commission   float64               `json:"commission"`
	DeliveryTime string                `json:"deliveryTime" binding:"required"`
	Address      listingAddressRequest `json:"address" binding:"required"`
}

func (r createListingRequest) toInput() ledger.ListingInput {
	items := make([]models.Item, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, models.Item{
			ID:       item.ID,
			Name:     strings.TrimSpace(item.Name),
			Price:    item.Price,
			Quantity: item.Quantity,
			Image:    strings.TrimSpace(item.Image),
		})
	}
	return ledger.ListingInput{
		Items:        items,
		Commission:   r.Commission,
		DeliveryTime: strings.TrimSpace(r.DeliveryTime),
		Address: models.Address{
			Street:  strings.TrimSpace(r.Address.Street),
			City:    strings.TrimSpace(r.Address.City),
			HouseNo: strings.TrimSpace(r.Address.HouseNo),
			RoomNo:  strings.TrimSpace(r.Address.RoomNo),
		},
	}
}

/*
GET /listings
- open feed: listings nobody has taken yet, newest first
- pagination applies only when both page and limit are given
*/
func GetOpenListings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /listings"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var skip, limit int64
		pageStr := c.Query("page")
		limitStr := c.Query("limit")
		if pageStr != "" && limitStr != "" {
			page, parsedLimit, err := parsePaginationParams(pageStr, limitStr)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
				return
			}
			skip = (page - 1) * parsedLimit
			limit = parsedLimit
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		feed, err := ledger.New(db).OpenListings(ctx, skip, limit)
		if err != nil {
			respondLedgerError(c, route, err)
			return
		}

		log.Printf("[%s] returning %d listings", route, len(feed))
		c.JSON(http.StatusOK, gin.H{"listings": feed})
	}
}

func GetMyListings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /listings/mine"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		listings, err := ledger.New(db).MyListings(ctx, userID)
		if err != nil {
			respondLedgerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"listings": listings})
	}
}

func CreateListing(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /listings"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req createListingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		listing, err := ledger.New(db).CreateListing(ctx, userID, req.toInput())
		if err != nil {
			respondLedgerError(c, route, err)
			return
		}

		log.Println("[LISTING] [INFO] listing created:", listing.ID.Hex())
		c.JSON(http.StatusCreated, gin.H{"listing": listing})
	}
}

func DeleteListing(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /listings/:id"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		listingID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := ledger.New(db).DeleteListing(ctx, userID, listingID); err != nil {
			respondLedgerError(c, route, err)
			return
		}

		log.Println("[LISTING] [INFO] listing deleted:", listingID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "listing deleted"})
	}
}
