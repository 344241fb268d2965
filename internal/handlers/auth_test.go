package handlers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIssueUserTokenRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()
	signed, err := issueUserToken(userID, "u@example.com", "secret", 10*time.Minute)
	if err != nil {
		t.Fatalf("issueUserToken returned error: %v", err)
	}

	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("expected valid token, got err=%v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	if claims["userId"] != userID.Hex() {
		t.Fatalf("expected userId claim %s, got %v", userID.Hex(), claims["userId"])
	}
	if claims["email"] != "u@example.com" {
		t.Fatalf("expected email claim, got %v", claims["email"])
	}
}

func TestHashTokenDeterministic(t *testing.T) {
	first := hashToken("some-refresh-token")
	second := hashToken("some-refresh-token")
	if first != second {
		t.Fatal("expected hashToken to be deterministic")
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(first))
	}
	if first == hashToken("another-token") {
		t.Fatal("expected different inputs to hash differently")
	}
}

func TestGenerateRefreshString(t *testing.T) {
	first := generateRefreshString()
	second := generateRefreshString()
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(first))
	}
	if first == second {
		t.Fatal("expected refresh strings to be unique")
	}
}

func TestLowerCamel(t *testing.T) {
	if got := lowerCamel("DeliveryTime"); got != "deliveryTime" {
		t.Fatalf("expected deliveryTime, got %s", got)
	}
	if got := lowerCamel(""); got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}
