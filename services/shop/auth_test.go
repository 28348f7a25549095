package shop

import (
	"context"
	"testing"

	shopRepo "tallerchat/database/repository/shop"
	"tallerchat/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type mockShopRepo struct {
	CreateFn     func(ctx context.Context, sh *models.Shop) error
	FindByNameFn func(ctx context.Context, name string) (*models.Shop, error)
	FindByIDFn   func(ctx context.Context, id string) (*models.Shop, error)
}

func (m *mockShopRepo) Create(ctx context.Context, sh *models.Shop) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, sh)
	}
	return nil
}

func (m *mockShopRepo) FindByName(ctx context.Context, name string) (*models.Shop, error) {
	if m.FindByNameFn != nil {
		return m.FindByNameFn(ctx, name)
	}
	return nil, shopRepo.ErrNotFound
}

func (m *mockShopRepo) FindByID(ctx context.Context, id string) (*models.Shop, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, shopRepo.ErrNotFound
}

func TestRegisterValidatesPIN(t *testing.T) {
	svc := &DefaultShopService{Repo: &mockShopRepo{}, Logger: zap.NewNop()}

	cases := []string{"", "123", "12345", "abcd", "12a4"}
	for _, pin := range cases {
		_, _, err := svc.Register(context.Background(), "Taller Uno", pin)
		assert.Error(t, err, "pin %q should be rejected", pin)
	}
}

func TestRegisterRequiresName(t *testing.T) {
	svc := &DefaultShopService{Repo: &mockShopRepo{}, Logger: zap.NewNop()}

	_, _, err := svc.Register(context.Background(), "", "1234")

	assert.Error(t, err)
}

func TestAuthenticateUnknownShop(t *testing.T) {
	svc := &DefaultShopService{Repo: &mockShopRepo{}, Logger: zap.NewNop()}

	_, _, err := svc.Authenticate(context.Background(), "Nadie", "1234")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateWrongPIN(t *testing.T) {
	digest, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	assert.NoError(t, err)

	repo := &mockShopRepo{
		FindByNameFn: func(_ context.Context, name string) (*models.Shop, error) {
			return &models.Shop{ID: "shop-1", Name: name, PINDigest: string(digest)}, nil
		},
	}
	svc := &DefaultShopService{Repo: repo, Logger: zap.NewNop()}

	// Wrong PIN and unknown shop produce the same error.
	_, _, err = svc.Authenticate(context.Background(), "Taller Uno", "9999")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
