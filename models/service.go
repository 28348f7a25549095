package models

import "time"

// ServiceDefinition is a catalog entry: a named, priced offering of the shop.
// Name is unique per shop (case-insensitive). UsageCount increments on every
// successful registration that references the entry.
type ServiceDefinition struct {
	ID         string    `bson:"id" json:"id"`
	ShopID     string    `bson:"shopId" json:"shopId"`
	Name       string    `bson:"name" json:"name"`
	Price      int64     `bson:"price" json:"price"`
	UsageCount int       `bson:"usageCount" json:"usageCount"`
	Active     bool      `bson:"active" json:"active"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ServiceRecord is one registered transaction. ServiceName and Price are
// snapshots taken at registration time; later catalog renames or price changes
// do not alter history. ClientName and VehiclePlate are denormalized the same
// way for display.
type ServiceRecord struct {
	ID           string    `bson:"id" json:"id"`
	ShopID       string    `bson:"shopId" json:"shopId"`
	ClientID     string    `bson:"clientId,omitempty" json:"clientId,omitempty"`
	VehicleID    string    `bson:"vehicleId,omitempty" json:"vehicleId,omitempty"`
	ServiceName  string    `bson:"serviceName" json:"serviceName"`
	Price        int64     `bson:"price" json:"price"`
	Notes        string    `bson:"notes,omitempty" json:"notes,omitempty"`
	ClientName   string    `bson:"clientName,omitempty" json:"clientName,omitempty"`
	VehiclePlate string    `bson:"vehiclePlate,omitempty" json:"vehiclePlate,omitempty"`
	ServiceDate  time.Time `bson:"serviceDate" json:"serviceDate"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// DailyStatistics summarizes one day of service records for a shop.
type DailyStatistics struct {
	Count              int    `json:"count"`
	TotalRevenue       int64  `json:"totalRevenue"`
	HighestPrice       int64  `json:"highestPrice"`
	MostPopularService string `json:"mostPopularService"`
	ClientsServed      int    `json:"clientsServed"`
}
