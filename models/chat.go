package models

import "time"

// ChatAction tags what kind of response the assistant produced.
type ChatAction string

const (
	ActionGreeting        ChatAction = "greeting"
	ActionHelp            ChatAction = "help"
	ActionCancel          ChatAction = "cancel"
	ActionConfirmation    ChatAction = "confirmation"
	ActionIncomplete      ChatAction = "incomplete"
	ActionRegistered      ChatAction = "registered"
	ActionError           ChatAction = "error"
	ActionQuery           ChatAction = "query"
	ActionStatistics      ChatAction = "statistics"
	ActionQuickRegistered ChatAction = "quick_registered"
)

// ParsedService is the structured extraction from one registration message.
// It doubles as the conversation's pending data, so the fields are fixed and
// typed rather than an open map.
type ParsedService struct {
	ServiceName string `bson:"serviceName,omitempty" json:"serviceName,omitempty"`
	Price       int64  `bson:"price,omitempty" json:"price,omitempty"`
	Plate       string `bson:"plate,omitempty" json:"plate,omitempty"`
	ClientName  string `bson:"clientName,omitempty" json:"clientName,omitempty"`
	Notes       string `bson:"notes,omitempty" json:"notes,omitempty"`
	Complete    bool   `bson:"complete" json:"complete"`
}

// Merge overlays newer extracted fields on top of p, keeping anything already
// known that the new turn did not mention. Completeness is recomputed.
func (p ParsedService) Merge(newer ParsedService) ParsedService {
	out := p
	if newer.ServiceName != "" {
		out.ServiceName = newer.ServiceName
	}
	if newer.Price > 0 {
		out.Price = newer.Price
	}
	if newer.Plate != "" {
		out.Plate = newer.Plate
	}
	if newer.ClientName != "" {
		out.ClientName = newer.ClientName
	}
	if newer.Notes != "" {
		out.Notes = newer.Notes
	}
	out.Complete = out.ServiceName != "" && out.Price > 0
	return out
}

// ChatMessage is one entry of a conversation's append-only message log.
type ChatMessage struct {
	Role      string     `bson:"role" json:"role"` // "user" or "assistant"
	Content   string     `bson:"content" json:"content"`
	Action    ChatAction `bson:"action,omitempty" json:"action,omitempty"`
	Timestamp time.Time  `bson:"timestamp" json:"timestamp"`
}

// ChatResult is the uniform per-message response shape produced by the
// orchestrator and consumed by the transport layer.
type ChatResult struct {
	Success  bool           `json:"success"`
	Response string         `json:"response"`
	Action   ChatAction     `json:"action"`
	Data     map[string]any `json:"data"`
}
