package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func newAuthRouter() (*gin.Engine, *primitive.ObjectID) {
	gin.SetMode(gin.TestMode)
	var captured primitive.ObjectID
	r := gin.New()
	r.GET("/protected", UserAuth(testSecret), func(c *gin.Context) {
		value, _ := c.Get("userId")
		captured = value.(primitive.ObjectID)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, &captured
}

func TestUserAuthValidToken(t *testing.T) {
	userID := primitive.NewObjectID()
	token := signToken(t, jwt.MapClaims{
		"userId": userID.Hex(),
		"email":  "u@example.com",
		"exp":    time.Now().Add(time.Minute).Unix(),
	}, testSecret)

	r, captured := newAuthRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, *captured)
}

func TestUserAuthMissingHeader(t *testing.T) {
	r, _ := newAuthRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserAuthBadScheme(t *testing.T) {
	r, _ := newAuthRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic abcdef")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserAuthExpiredToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"exp":    time.Now().Add(-time.Minute).Unix(),
	}, testSecret)

	r, _ := newAuthRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserAuthWrongSecret(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"exp":    time.Now().Add(time.Minute).Unix(),
	}, "other-secret")

	r, _ := newAuthRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
		ok     bool
	}{
		{"", "", false},
		{"Basic abcdef", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer abc.def.ghi", "abc.def.ghi", true},
		{"  Bearer   abc.def.ghi  ", "abc.def.ghi", true},
	}
	for _, tc := range cases {
		got, ok := bearerToken(tc.header)
		assert.Equal(t, tc.ok, ok, tc.header)
		assert.Equal(t, tc.want, got, tc.header)
	}
}

func TestUserAuthMissingUserIDClaim(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"email": "u@example.com",
		"exp":   time.Now().Add(time.Minute).Unix(),
	}, testSecret)

	r, _ := newAuthRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
