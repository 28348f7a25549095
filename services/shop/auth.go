package shop

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	shopRepo "tallerchat/database/repository/shop"
	"tallerchat/models"
	"tallerchat/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 24 * time.Hour

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// ErrInvalidCredentials is returned on a bad shop name or PIN. The two cases
// are not distinguished for the caller.
var ErrInvalidCredentials = errors.New("invalid shop name or PIN")

// DefaultShopService implements ShopService with bcrypt PIN digests and
// Redis-backed session tokens.
type DefaultShopService struct {
	Repo   shopRepo.ShopRepository
	Cache  *redis.Client
	Logger *zap.Logger
}

// Register creates a shop account and returns it with a fresh session token.
func (s *DefaultShopService) Register(ctx context.Context, name, pin string) (*models.Shop, string, error) {
	if name == "" {
		return nil, "", errors.New("shop name is required")
	}
	if !pinPattern.MatchString(pin) {
		return nil, "", errors.New("PIN must be exactly 4 digits")
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash PIN: %w", err)
	}

	newShop := &models.Shop{Name: name, PINDigest: string(digest)}
	if err := s.Repo.Create(ctx, newShop); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(newShop)
	if err != nil {
		return nil, "", err
	}
	return newShop, token, nil
}

// Authenticate verifies the PIN and returns the shop with a session token.
func (s *DefaultShopService) Authenticate(ctx context.Context, name, pin string) (*models.Shop, string, error) {
	found, err := s.Repo.FindByName(ctx, name)
	if errors.Is(err, shopRepo.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PINDigest), []byte(pin)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(found)
	if err != nil {
		return nil, "", err
	}
	return found, token, nil
}

func (s *DefaultShopService) issueToken(sh *models.Shop) (string, error) {
	token, err := utils.GenerateToken(sh.ID, sh.Name, sessionTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	if err := utils.SaveShopSession(s.Cache, sh.ID, utils.HashToken(token), sessionTTL); err != nil {
		return "", err
	}
	return token, nil
}

// Logout revokes the shop's cached session token.
func (s *DefaultShopService) Logout(ctx context.Context, shopID string) error {
	if err := utils.DeleteShopSession(s.Cache, shopID); err != nil {
		s.Logger.Warn("failed to delete shop session", zap.String("shopId", shopID), zap.Error(err))
		return err
	}
	return nil
}

func (s *DefaultShopService) GetByID(ctx context.Context, shopID string) (*models.Shop, error) {
	return s.Repo.FindByID(ctx, shopID)
}
