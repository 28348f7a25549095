package models

import "time"

// Analytics event types.
const (
	EventServiceRegistered    = "service_registered"
	EventMessageSent          = "message_sent"
	EventConfirmationAccepted = "confirmation_accepted"
	EventConfirmationRejected = "confirmation_rejected"
	EventSuggestionUsed       = "suggestion_used"
)

// AnalyticsEvent is a fire-and-forget usage event. Emission failures must
// never fail the operation that produced the event.
type AnalyticsEvent struct {
	ID        string         `bson:"id" json:"id"`
	ShopID    string         `bson:"shopId" json:"shopId"`
	EventType string         `bson:"eventType" json:"eventType"`
	Metadata  map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
}
