// File: tallerchat/utils/auth_session.go
package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const ShopSessionPrefix = "shopSession:"

// SaveShopSession stores the hashed auth token for a shop in Redis with a TTL.
// Only one active session per shop; a new login replaces the previous token.
func SaveShopSession(client *redis.Client, shopID, tokenHash string, ttl time.Duration) error {
	ctx := context.Background()
	if err := client.Set(ctx, ShopSessionPrefix+shopID, tokenHash, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save shop session: %w", err)
	}
	return nil
}

// GetShopSession retrieves the stored token hash for a shop. Returns redis.Nil
// wrapped error when no session exists.
func GetShopSession(client *redis.Client, shopID string) (string, error) {
	ctx := context.Background()
	hash, err := client.Get(ctx, ShopSessionPrefix+shopID).Result()
	if err != nil {
		return "", fmt.Errorf("shop session not found: %w", err)
	}
	return hash, nil
}

// DeleteShopSession removes a shop session from Redis (logout / revoke).
func DeleteShopSession(client *redis.Client, shopID string) error {
	ctx := context.Background()
	return client.Del(ctx, ShopSessionPrefix+shopID).Err()
}
