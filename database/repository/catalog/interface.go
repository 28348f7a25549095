package catalogRepo

import (
	"context"

	"tallerchat/database"
	"tallerchat/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogRepository is the read-mostly store of a shop's service offerings.
type CatalogRepository interface {
	// ActiveServices returns the shop's active entries in creation order; the
	// parser depends on that order being stable.
	ActiveServices(ctx context.Context, shopID string) ([]models.ServiceDefinition, error)
	// FindByName resolves an entry case-insensitively, active or not.
	FindByName(ctx context.Context, shopID, name string) (*models.ServiceDefinition, error)
	GetByID(ctx context.Context, shopID, id string) (*models.ServiceDefinition, error)
	// IncrementUsage bumps the usage counter of an entry by name.
	IncrementUsage(ctx context.Context, shopID, name string) error
	Create(ctx context.Context, svc *models.ServiceDefinition) error
	Deactivate(ctx context.Context, shopID, id string) error
	// Popular returns active entries by descending usage.
	Popular(ctx context.Context, shopID string, limit int) ([]models.ServiceDefinition, error)
	// Search matches name substrings case-insensitively for typeahead.
	Search(ctx context.Context, shopID, query string, limit int) ([]models.ServiceDefinition, error)
}

type mongoCatalogRepo struct {
	coll *mongo.Collection
}

// NewMongoCatalogRepo returns a CatalogRepository backed by MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	return &mongoCatalogRepo{
		coll: database.DB().Collection("services"),
	}
}
