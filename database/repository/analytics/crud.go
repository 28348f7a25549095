package analyticsRepo

import (
	"context"
	"fmt"
	"time"

	"tallerchat/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoAnalyticsRepo) Insert(ctx context.Context, event models.AnalyticsEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to insert analytics event: %w", err)
	}
	return nil
}

func (r *mongoAnalyticsRepo) Recent(ctx context.Context, shopID string, limit int) ([]models.AnalyticsEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.M{"shopId": shopID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query analytics events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.AnalyticsEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *mongoAnalyticsRepo) CountSince(ctx context.Context, shopID, eventType string, since time.Time) (int64, error) {
	filter := bson.M{
		"shopId":    shopID,
		"eventType": eventType,
		"createdAt": bson.M{"$gte": since},
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count analytics events: %w", err)
	}
	return count, nil
}
