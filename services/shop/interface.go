package shop

import (
	"context"

	"tallerchat/models"
)

// ShopService handles tenant accounts: registration, PIN login, logout.
type ShopService interface {
	Register(ctx context.Context, name, pin string) (*models.Shop, string, error)
	Authenticate(ctx context.Context, name, pin string) (*models.Shop, string, error)
	Logout(ctx context.Context, shopID string) error
	GetByID(ctx context.Context, shopID string) (*models.Shop, error)
}

// CatalogService manages the shop's service offerings and the one-tap quick
// registration of a catalog entry.
type CatalogService interface {
	List(ctx context.Context, shopID string) ([]models.ServiceDefinition, error)
	Popular(ctx context.Context, shopID string, limit int) ([]models.ServiceDefinition, error)
	Create(ctx context.Context, shopID, name string, price int64) (*models.ServiceDefinition, error)
	Deactivate(ctx context.Context, shopID, serviceID string) error
	Search(ctx context.Context, shopID, query string, limit int) ([]models.ServiceDefinition, error)
	QuickRegister(ctx context.Context, shopID, serviceID string) (*models.ServiceRecord, string, error)
}
