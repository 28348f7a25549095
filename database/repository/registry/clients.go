package registryRepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"tallerchat/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a client or vehicle cannot be resolved.
var ErrNotFound = errors.New("not found")

// FindClientByName resolves a client by case-insensitive exact name match
// within the shop.
func (r *mongoRegistryRepo) FindClientByName(ctx context.Context, shopID, name string) (*models.Client, error) {
	filter := bson.M{
		"shopId": shopID,
		"name":   primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"},
	}
	var client models.Client
	err := r.clients.FindOne(ctx, filter).Decode(&client)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find client by name: %w", err)
	}
	return &client, nil
}

// SearchClients matches client names by case-insensitive substring.
func (r *mongoRegistryRepo) SearchClients(ctx context.Context, shopID, namePart string, limit int) ([]models.Client, error) {
	filter := bson.M{
		"shopId": shopID,
		"name":   primitive.Regex{Pattern: regexp.QuoteMeta(namePart), Options: "i"},
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.clients.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search clients: %w", err)
	}
	defer cursor.Close(ctx)

	var clients []models.Client
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// FindVehicleByPlate looks a vehicle up globally by its normalized plate.
func (r *mongoRegistryRepo) FindVehicleByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.vehicles.FindOne(ctx, bson.M{"plate": plate}).Decode(&vehicle)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicle by plate: %w", err)
	}
	return &vehicle, nil
}
