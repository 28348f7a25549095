package catalogRepo

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a catalog entry cannot be resolved.
var ErrNotFound = errors.New("catalog entry not found")

func nameFilter(shopID, name string) bson.M {
	return bson.M{
		"shopId": shopID,
		"name":   primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"},
	}
}

func (r *mongoCatalogRepo) ActiveServices(ctx context.Context, shopID string) ([]models.ServiceDefinition, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"shopId": shopID, "active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query active services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.ServiceDefinition
	if err := cursor.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *mongoCatalogRepo) FindByName(ctx context.Context, shopID, name string) (*models.ServiceDefinition, error) {
	var svc models.ServiceDefinition
	err := r.coll.FindOne(ctx, nameFilter(shopID, name)).Decode(&svc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find service by name: %w", err)
	}
	return &svc, nil
}

func (r *mongoCatalogRepo) GetByID(ctx context.Context, shopID, id string) (*models.ServiceDefinition, error) {
	var svc models.ServiceDefinition
	err := r.coll.FindOne(ctx, bson.M{"shopId": shopID, "id": id}).Decode(&svc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find service by id: %w", err)
	}
	return &svc, nil
}

// IncrementUsage bumps usageCount by one. Called exactly once per successful
// registration, inside the registration transaction.
func (r *mongoCatalogRepo) IncrementUsage(ctx context.Context, shopID, name string) error {
	update := bson.M{
		"$inc": bson.M{"usageCount": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, nameFilter(shopID, name), update)
	if err != nil {
		return fmt.Errorf("failed to increment service usage: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoCatalogRepo) Create(ctx context.Context, svc *models.ServiceDefinition) error {
	existing, err := r.FindByName(ctx, svc.ShopID, svc.Name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if existing != nil {
		return fmt.Errorf("service %q already exists in this shop", svc.Name)
	}

	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}
	svc.Active = true
	svc.CreatedAt = time.Now()
	svc.UpdatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, svc); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *mongoCatalogRepo) Deactivate(ctx context.Context, shopID, id string) error {
	update := bson.M{
		"$set": bson.M{"active": false, "updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"shopId": shopID, "id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to deactivate service: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoCatalogRepo) Popular(ctx context.Context, shopID string, limit int) ([]models.ServiceDefinition, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "usageCount", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.M{"shopId": shopID, "active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query popular services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.ServiceDefinition
	if err := cursor.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *mongoCatalogRepo) Search(ctx context.Context, shopID, query string, limit int) ([]models.ServiceDefinition, error) {
	filter := bson.M{
		"shopId": shopID,
		"name":   primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.ServiceDefinition
	if err := cursor.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}
