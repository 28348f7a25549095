package shopRepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"tallerchat/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a shop cannot be resolved.
var ErrNotFound = errors.New("shop not found")

func (r *mongoShopRepo) Create(ctx context.Context, shop *models.Shop) error {
	existing, err := r.FindByName(ctx, shop.Name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if existing != nil {
		return fmt.Errorf("shop %q already exists", shop.Name)
	}

	if shop.ID == "" {
		shop.ID = uuid.New().String()
	}
	shop.CreatedAt = time.Now()
	shop.UpdatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, shop); err != nil {
		return fmt.Errorf("failed to create shop: %w", err)
	}
	return nil
}

func (r *mongoShopRepo) FindByName(ctx context.Context, name string) (*models.Shop, error) {
	filter := bson.M{
		"name": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"},
	}
	var shop models.Shop
	err := r.coll.FindOne(ctx, filter).Decode(&shop)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find shop by name: %w", err)
	}
	return &shop, nil
}

func (r *mongoShopRepo) FindByID(ctx context.Context, id string) (*models.Shop, error) {
	var shop models.Shop
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&shop)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find shop by id: %w", err)
	}
	return &shop, nil
}
