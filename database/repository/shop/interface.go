package shopRepo

import (
	"context"

	"tallerchat/database"
	"tallerchat/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ShopRepository stores tenant accounts.
type ShopRepository interface {
	Create(ctx context.Context, shop *models.Shop) error
	FindByName(ctx context.Context, name string) (*models.Shop, error)
	FindByID(ctx context.Context, id string) (*models.Shop, error)
}

type mongoShopRepo struct {
	coll *mongo.Collection
}

// NewMongoShopRepo returns a ShopRepository backed by MongoDB.
func NewMongoShopRepo() ShopRepository {
	return &mongoShopRepo{
		coll: database.DB().Collection("shops"),
	}
}
