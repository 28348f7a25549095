package registryRepo

import (
	"context"
	"fmt"
	"time"

	"tallerchat/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var recentFirst = bson.D{{Key: "serviceDate", Value: -1}}

func (r *mongoRegistryRepo) findRecords(ctx context.Context, filter bson.M, limit int) ([]models.ServiceRecord, error) {
	opts := options.Find().SetSort(recentFirst)
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.records.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query service records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.ServiceRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// RecordsInRange returns the shop's records with serviceDate in [start, end),
// newest first.
func (r *mongoRegistryRepo) RecordsInRange(ctx context.Context, shopID string, start, end time.Time) ([]models.ServiceRecord, error) {
	filter := bson.M{
		"shopId":      shopID,
		"serviceDate": bson.M{"$gte": start, "$lt": end},
	}
	return r.findRecords(ctx, filter, 0)
}

func (r *mongoRegistryRepo) RecordsByVehicle(ctx context.Context, shopID, vehicleID string, limit int) ([]models.ServiceRecord, error) {
	filter := bson.M{"shopId": shopID, "vehicleId": vehicleID}
	return r.findRecords(ctx, filter, limit)
}

func (r *mongoRegistryRepo) RecordsByClients(ctx context.Context, shopID string, clientIDs []string, limit int) ([]models.ServiceRecord, error) {
	if len(clientIDs) == 0 {
		return []models.ServiceRecord{}, nil
	}
	filter := bson.M{
		"shopId":   shopID,
		"clientId": bson.M{"$in": clientIDs},
	}
	return r.findRecords(ctx, filter, limit)
}

func (r *mongoRegistryRepo) RecentRecords(ctx context.Context, shopID string, limit int) ([]models.ServiceRecord, error) {
	return r.findRecords(ctx, bson.M{"shopId": shopID}, limit)
}

// InsertRecord writes a single record. Used by the quick-register path, which
// has no client or vehicle to resolve.
func (r *mongoRegistryRepo) InsertRecord(ctx context.Context, record *models.ServiceRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now()
	if _, err := r.records.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert service record: %w", err)
	}
	return nil
}
