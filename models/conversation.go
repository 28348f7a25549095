package models

import "time"

// Conversation states.
const (
	StateIdle                 = "idle"
	StateAwaitingConfirmation = "awaiting_confirmation"
	StateAwaitingCorrection   = "awaiting_correction"
)

// Conversation holds the per-shop chat state machine plus the append-only
// message log. Pending is only meaningful while State is not idle.
type Conversation struct {
	ID             string         `bson:"id" json:"id"`
	ShopID         string         `bson:"shopId" json:"shopId"`
	State          string         `bson:"state" json:"state"`
	Pending        *ParsedService `bson:"pendingData,omitempty" json:"pendingData,omitempty"`
	Messages       []ChatMessage  `bson:"messages" json:"messages"`
	LastActivityAt time.Time      `bson:"lastActivityAt" json:"lastActivityAt"`
	CreatedAt      time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// UpdateState transitions the conversation and merges newly extracted fields
// into the pending data, so fields learned on earlier turns survive a
// correction turn.
func (c *Conversation) UpdateState(state string, parsed ParsedService, now time.Time) {
	merged := parsed
	if c.Pending != nil {
		merged = c.Pending.Merge(parsed)
	}
	c.State = state
	c.Pending = &merged
	c.LastActivityAt = now
}

// Reset returns the conversation to idle and clears pending data. The message
// log is kept.
func (c *Conversation) Reset(now time.Time) {
	c.State = StateIdle
	c.Pending = nil
	c.LastActivityAt = now
}

// AddMessage appends one entry to the message log.
func (c *Conversation) AddMessage(role, content string, action ChatAction, now time.Time) {
	c.Messages = append(c.Messages, ChatMessage{
		Role:      role,
		Content:   content,
		Action:    action,
		Timestamp: now,
	})
	c.LastActivityAt = now
}

// PendingData returns the pending extraction, or a zero value when idle.
func (c *Conversation) PendingData() ParsedService {
	if c.Pending == nil {
		return ParsedService{}
	}
	return *c.Pending
}

// IsStale reports whether the conversation has been inactive for at least
// threshold. Staleness never forces a transition by itself; the sweeper uses
// it to reset abandoned conversations.
func (c *Conversation) IsStale(now time.Time, threshold time.Duration) bool {
	if c.LastActivityAt.IsZero() {
		return false
	}
	return now.Sub(c.LastActivityAt) >= threshold
}

// MessagesToday returns the message log only if the conversation was active
// today; an old log is not replayed into a fresh day's chat view.
func (c *Conversation) MessagesToday(now time.Time) []ChatMessage {
	if c.LastActivityAt.IsZero() {
		return nil
	}
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if c.LastActivityAt.Before(startOfDay) {
		return nil
	}
	return c.Messages
}
