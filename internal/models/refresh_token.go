package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RefreshToken is one link in a user's session rotation chain. Only the
// sha256 of the opaque token string is stored; rotation revokes the link
// and points it at its successor so a replayed token can be detected.
type RefreshToken struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID  `bson:"userId" json:"userId"`
	TokenHash  string              `bson:"tokenHash" json:"-"`
	ExpiresAt  time.Time           `bson:"expiresAt" json:"expiresAt"`
	Revoked    bool                `bson:"revoked" json:"revoked"`
	ReplacedBy *primitive.ObjectID `bson:"replacedBy,omitempty" json:"replacedBy,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
}
