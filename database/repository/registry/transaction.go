package registryRepo

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
	"go.uber.org/zap"
)

// RegisterVisit performs the registration write as one Mongo transaction.
// The price recorded is the one extracted from the message, not the catalog
// list price; operators may override the list price per visit.
func (r *mongoRegistryRepo) RegisterVisit(ctx context.Context, shopID string, data models.ParsedService, clientName string, now time.Time) (*models.ServiceRecord, error) {
	client := r.records.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var record *models.ServiceRecord

	txnFn := func(sc mongo.SessionContext) error {
		resolvedClient, err := r.resolveClient(sc, shopID, clientName, now)
		if err != nil {
			return err
		}

		var vehicle *models.Vehicle
		if data.Plate != "" {
			vehicle, err = r.resolveVehicle(sc, resolvedClient, data.Plate, now)
			if err != nil {
				return err
			}
		}

		rec := models.ServiceRecord{
			ID:          uuid.New().String(),
			ShopID:      shopID,
			ClientID:    resolvedClient.ID,
			ServiceName: data.ServiceName,
			Price:       data.Price,
			Notes:       data.Notes,
			ClientName:  resolvedClient.Name,
			ServiceDate: now,
			CreatedAt:   now,
		}
		if vehicle != nil {
			rec.VehicleID = vehicle.ID
			rec.VehiclePlate = vehicle.Plate
		}

		if _, err := r.records.InsertOne(sc, rec); err != nil {
			return fmt.Errorf("insert service record failed: %w", err)
		}

		usageFilter := bson.M{
			"shopId": shopID,
			"name":   primitive.Regex{Pattern: "^" + regexp.QuoteMeta(data.ServiceName) + "$", Options: "i"},
		}
		usageUpdate := bson.M{
			"$inc": bson.M{"usageCount": 1},
			"$set": bson.M{"updatedAt": now},
		}
		res, err := r.services.UpdateOne(sc, usageFilter, usageUpdate)
		if err != nil {
			return fmt.Errorf("increment usage failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("catalog entry %q disappeared during registration", data.ServiceName)
		}

		record = &rec
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return nil, fmt.Errorf("registration transaction failed: %w", err)
	}

	return record, nil
}

func (r *mongoRegistryRepo) resolveClient(sc mongo.SessionContext, shopID, name string, now time.Time) (*models.Client, error) {
	filter := bson.M{
		"shopId": shopID,
		"name":   primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"},
	}
	var existing models.Client
	err := r.clients.FindOne(sc, filter).Decode(&existing)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("client lookup failed: %w", err)
	}

	created := models.Client{
		ID:        uuid.New().String(),
		ShopID:    shopID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.clients.InsertOne(sc, created); err != nil {
		return nil, fmt.Errorf("create client failed: %w", err)
	}
	return &created, nil
}

func (r *mongoRegistryRepo) resolveVehicle(sc mongo.SessionContext, client *models.Client, plate string, now time.Time) (*models.Vehicle, error) {
	var existing models.Vehicle
	err := r.vehicles.FindOne(sc, bson.M{"plate": plate}).Decode(&existing)
	if err == nil {
		// Same plate under a new name: reassign ownership, last registration
		// wins. Logged so the policy stays observable in production.
		if existing.ClientID != client.ID {
			update := bson.M{"$set": bson.M{"clientId": client.ID, "updatedAt": now}}
			if _, err := r.vehicles.UpdateOne(sc, bson.M{"id": existing.ID}, update); err != nil {
				return nil, fmt.Errorf("reassign vehicle failed: %w", err)
			}
			zap.L().Info("vehicle reassigned to new client",
				zap.String("plate", plate),
				zap.String("previousClientId", existing.ClientID),
				zap.String("newClientId", client.ID))
			existing.ClientID = client.ID
		}
		return &existing, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("vehicle lookup failed: %w", err)
	}

	created := models.Vehicle{
		ID:        uuid.New().String(),
		ClientID:  client.ID,
		Plate:     plate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.vehicles.InsertOne(sc, created); err != nil {
		return nil, fmt.Errorf("create vehicle failed: %w", err)
	}
	return &created, nil
}
