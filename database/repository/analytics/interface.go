package analyticsRepo

import (
	"context"
	"time"

	"tallerchat/database"
	"tallerchat/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AnalyticsRepository persists fire-and-forget usage events.
type AnalyticsRepository interface {
	Insert(ctx context.Context, event models.AnalyticsEvent) error
	Recent(ctx context.Context, shopID string, limit int) ([]models.AnalyticsEvent, error)
	CountSince(ctx context.Context, shopID, eventType string, since time.Time) (int64, error)
}

type mongoAnalyticsRepo struct {
	coll *mongo.Collection
}

// NewMongoAnalyticsRepo returns an AnalyticsRepository backed by MongoDB.
func NewMongoAnalyticsRepo() AnalyticsRepository {
	return &mongoAnalyticsRepo{
		coll: database.DB().Collection("analytics_events"),
	}
}
