package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"gofermarket/internal/ledger"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func ensureDBConnection(ctx context.Context, db *mongo.Database) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.Client().Ping(checkCtx, readpref.Primary())
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondLedgerError maps the ledger error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a storage failure: logged in full,
// reported generically.
func respondLedgerError(c *gin.Context, route string, err error) {
	var invalid ledger.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		respondWithError(c, http.StatusBadRequest, route, invalid.Reason)
	case errors.Is(err, ledger.ErrUnauthorized):
		respondWithError(c, http.StatusForbidden, route, "unauthorized")
	case errors.Is(err, ledger.ErrNotFound):
		respondWithError(c, http.StatusNotFound, route, "not found")
	case errors.Is(err, ledger.ErrListingTaken):
		respondWithError(c, http.StatusConflict, route, "someone has already taken this listing")
	default:
		log.Printf("[%s] storage error: %v", route, err)
		respondWithError(c, http.StatusInternalServerError, route, "db error")
	}
}

// currentUserID reads the user id the auth middleware placed in the context.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, ok := c.Get("userId")
	if !ok {
		return primitive.NilObjectID, false
	}
	userID, ok := value.(primitive.ObjectID)
	return userID, ok
}
