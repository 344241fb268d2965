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
)

type acceptListingRequest struct {
	ListingID string `json:"listingId" binding:"required"`
}

// AcceptListing takes an open listing off the feed by creating its order.
// Only the listing id is read from the body; items, commission and total
// are snapshotted server-side from the listing as stored.
func AcceptListing(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req acceptListingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		listingID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.ListingID))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid listingId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := ledger.New(db).AcceptListing(ctx, userID, listingID)
		if err != nil {
			respondLedgerError(c, route, err)
			return
		}

		log.Println("[ORDER] [INFO] listing accepted:", listingID.Hex(), "order:", order.ID.Hex())
		c.JSON(http.StatusCreated, gin.H{"order": order})
	}
}

func GetMyOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		orders, err := ledger.New(db).OrdersForFulfiller(ctx, userID)
		if err != nil {
			respondLedgerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// CancelOrder deletes an order, returning its listing to the open feed.
func CancelOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /orders/:id"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := ledger.New(db).CancelOrder(ctx, userID, orderID); err != nil {
			respondLedgerError(c, route, err)
			return
		}

		log.Println("[ORDER] [INFO] order cancelled:", orderID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "order cancelled"})
	}
}
