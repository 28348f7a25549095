package models

import "time"

// Client is a shop customer. Names are free text and only unique in practice,
// not enforced; resolution is case-insensitive exact match per shop.
type Client struct {
	ID        string    `bson:"id" json:"id"`
	ShopID    string    `bson:"shopId" json:"shopId"`
	Name      string    `bson:"name" json:"name"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Vehicle belongs to a client. Plates are globally unique; when the same plate
// shows up under a new client the vehicle is reassigned (last registration wins).
type Vehicle struct {
	ID        string    `bson:"id" json:"id"`
	ClientID  string    `bson:"clientId" json:"clientId"`
	Plate     string    `bson:"plate" json:"plate"` // normalized: uppercase, no separators
	Brand     string    `bson:"brand,omitempty" json:"brand,omitempty"`
	Color     string    `bson:"color,omitempty" json:"color,omitempty"`
	Model     string    `bson:"model,omitempty" json:"model,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
