package models

import "time"

// Shop is the tenant. All clients, vehicles, records, catalog entries and
// conversations are scoped to one shop.
type Shop struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"` // unique
	PINDigest string    `bson:"pinDigest" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
