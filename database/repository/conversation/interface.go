package conversationRepo

import (
	"context"
	"time"

	"tallerchat/database"
	"tallerchat/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ConversationRepository is the durable store behind the chat state machine.
type ConversationRepository interface {
	// ActiveForShop returns the shop's most recent conversation, creating an
	// idle one lazily on first interaction.
	ActiveForShop(ctx context.Context, shopID string) (*models.Conversation, error)
	Save(ctx context.Context, conv *models.Conversation) error
	AppendMessage(ctx context.Context, conversationID string, msg models.ChatMessage) error
	// FindStale returns non-idle conversations whose last activity predates
	// cutoff. Used by the sweeper; never transitions anything itself.
	FindStale(ctx context.Context, cutoff time.Time) ([]models.Conversation, error)
}

type mongoConversationRepo struct {
	coll *mongo.Collection
}

// NewMongoConversationRepo returns a ConversationRepository backed by MongoDB.
func NewMongoConversationRepo() ConversationRepository {
	return &mongoConversationRepo{
		coll: database.DB().Collection("conversations"),
	}
}
