package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address represents a single saved delivery address for a user. The same
// shape is copied into listings and orders at creation time.
type Address struct {
	ID        string `bson:"id,omitempty" json:"id,omitempty"`
	Title     string `bson:"title,omitempty" json:"title,omitempty"`
	Street    string `bson:"street" json:"street"`
	City      string `bson:"city" json:"city"`
	HouseNo   string `bson:"houseNo" json:"houseNo"`
	RoomNo    string `bson:"roomNo,omitempty" json:"roomNo,omitempty"`
	IsDefault bool   `bson:"isDefault" json:"isDefault"`
}

// User represents the application user account.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Name         string             `bson:"name" json:"name"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Bio          string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Avatar       string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Addresses    []Address          `bson:"addresses" json:"addresses"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is the user shape exposed next to listings and orders.
type PublicUser struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Email  string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone  string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Avatar string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
}

// Public strips credential and address fields from a user record.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Phone:  u.Phone,
		Avatar: u.Avatar,
	}
}
