package chat

import (
	"encoding/json"
	"time"

	"tallerchat/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeAnalyticsEvent is the asynq task type for analytics events.
const TypeAnalyticsEvent = "analytics:event"

// AnalyticsSink emits fire-and-forget usage events. Implementations must
// never let an emission failure propagate to the caller.
type AnalyticsSink interface {
	Track(shopID, eventType string, metadata map[string]any)
}

// AsynqAnalyticsSink enqueues events onto the background queue; the cron
// worker persists them. Enqueue failures are logged and swallowed.
type AsynqAnalyticsSink struct {
	Client *asynq.Client
	Logger *zap.Logger
}

func (s *AsynqAnalyticsSink) Track(shopID, eventType string, metadata map[string]any) {
	event := models.AnalyticsEvent{
		ShopID:    shopID,
		EventType: eventType,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.Logger.Warn("analytics: failed to marshal event",
			zap.String("eventType", eventType), zap.Error(err))
		return
	}
	if _, err := s.Client.Enqueue(asynq.NewTask(TypeAnalyticsEvent, payload)); err != nil {
		s.Logger.Warn("analytics: failed to enqueue event",
			zap.String("eventType", eventType), zap.Error(err))
	}
}
