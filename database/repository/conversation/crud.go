package conversationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tallerchat/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActiveForShop returns the most recent conversation for the shop, creating a
// fresh idle one when the shop has none yet.
func (r *mongoConversationRepo) ActiveForShop(ctx context.Context, shopID string) (*models.Conversation, error) {
	opts := options.FindOne().SetSort(bson.D{
		{Key: "lastActivityAt", Value: -1},
		{Key: "createdAt", Value: -1},
	})

	var conv models.Conversation
	err := r.coll.FindOne(ctx, bson.M{"shopId": shopID}, opts).Decode(&conv)
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	now := time.Now()
	conv = models.Conversation{
		ID:             uuid.New().String(),
		ShopID:         shopID,
		State:          models.StateIdle,
		Messages:       []models.ChatMessage{},
		LastActivityAt: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := r.coll.InsertOne(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return &conv, nil
}

// Save persists the full conversation document.
func (r *mongoConversationRepo) Save(ctx context.Context, conv *models.Conversation) error {
	conv.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": conv.ID}, conv)
	if err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	if res.MatchedCount == 0 {
		return errors.New("conversation not found")
	}
	return nil
}

// AppendMessage pushes one entry onto the append-only message log.
func (r *mongoConversationRepo) AppendMessage(ctx context.Context, conversationID string, msg models.ChatMessage) error {
	update := bson.M{
		"$push": bson.M{"messages": msg},
		"$set": bson.M{
			"lastActivityAt": msg.Timestamp,
			"updatedAt":      time.Now(),
		},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": conversationID}, update)
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	if res.MatchedCount == 0 {
		return errors.New("conversation not found")
	}
	return nil
}

// FindStale returns non-idle conversations inactive since before cutoff.
func (r *mongoConversationRepo) FindStale(ctx context.Context, cutoff time.Time) ([]models.Conversation, error) {
	filter := bson.M{
		"state":          bson.M{"$ne": models.StateIdle},
		"lastActivityAt": bson.M{"$lt": cutoff},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale conversations: %w", err)
	}
	defer cursor.Close(ctx)

	var convs []models.Conversation
	if err := cursor.All(ctx, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}
