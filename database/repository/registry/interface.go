package registryRepo

import (
	"context"
	"time"

	"tallerchat/database"
	"tallerchat/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// RegistryRepository stores clients, vehicles and service records, and offers
// the query shapes the chat engine needs.
type RegistryRepository interface {
	FindClientByName(ctx context.Context, shopID, name string) (*models.Client, error)
	SearchClients(ctx context.Context, shopID, namePart string, limit int) ([]models.Client, error)
	FindVehicleByPlate(ctx context.Context, plate string) (*models.Vehicle, error)

	RecordsInRange(ctx context.Context, shopID string, start, end time.Time) ([]models.ServiceRecord, error)
	RecordsByVehicle(ctx context.Context, shopID, vehicleID string, limit int) ([]models.ServiceRecord, error)
	RecordsByClients(ctx context.Context, shopID string, clientIDs []string, limit int) ([]models.ServiceRecord, error)
	RecentRecords(ctx context.Context, shopID string, limit int) ([]models.ServiceRecord, error)

	// InsertRecord writes one record outside any transaction (quick register).
	InsertRecord(ctx context.Context, record *models.ServiceRecord) error

	// RegisterVisit runs the full registration write as one Mongo transaction:
	// resolve-or-create the client, resolve/reassign-or-create the vehicle,
	// insert the record, and bump the catalog usage counter. Any failure rolls
	// the whole unit back.
	RegisterVisit(ctx context.Context, shopID string, data models.ParsedService, clientName string, now time.Time) (*models.ServiceRecord, error)
}

type mongoRegistryRepo struct {
	clients  *mongo.Collection
	vehicles *mongo.Collection
	records  *mongo.Collection
	services *mongo.Collection
}

// NewMongoRegistryRepo returns a RegistryRepository backed by MongoDB.
func NewMongoRegistryRepo() RegistryRepository {
	db := database.DB()
	return &mongoRegistryRepo{
		clients:  db.Collection("clients"),
		vehicles: db.Collection("vehicles"),
		records:  db.Collection("service_records"),
		services: db.Collection("services"),
	}
}
