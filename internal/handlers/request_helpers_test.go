package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"gofermarket/internal/ledger"
)

func TestRespondLedgerErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"invalid input", ledger.InvalidInputError{Reason: "item name is required"}, http.StatusBadRequest},
		{"unauthorized", ledger.ErrUnauthorized, http.StatusForbidden},
		{"not found", ledger.ErrNotFound, http.StatusNotFound},
		{"listing taken", ledger.ErrListingTaken, http.StatusConflict},
		{"storage failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondLedgerError(c, "TEST", tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]string
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.NotEmpty(t, response["error"])
		})
	}
}

func TestRespondLedgerErrorInvalidInputKeepsReason(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondLedgerError(c, "TEST", ledger.InvalidInputError{Reason: "commission cannot be negative"})

	var response map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "commission cannot be negative", response["error"])
}

func TestRespondLedgerErrorHidesStorageDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondLedgerError(c, "TEST", errors.New("mongo: topology closed"))

	var response map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "db error", response["error"])
}

func TestParsePaginationParams(t *testing.T) {
	page, limit, err := parsePaginationParams("2", "10")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), page)
	assert.Equal(t, int64(10), limit)

	_, _, err = parsePaginationParams("0", "10")
	assert.Error(t, err)

	_, _, err = parsePaginationParams("abc", "10")
	assert.Error(t, err)

	page, limit, err = parsePaginationParams("", "")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), page)
	assert.Equal(t, int64(20), limit)
}
