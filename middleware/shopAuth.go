package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	shopRepo "tallerchat/database/repository/shop"
	"tallerchat/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// JWTAuthShopMiddleware validates the bearer token for shop-scoped routes and
// puts the shop ID into the Gin context as "shopID".
func JWTAuthShopMiddleware(shops shopRepo.ShopRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Recover from unexpected panics.
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  500,
				})
			}
		}()

		ctx := c.Request.Context()

		// Retrieve token from header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		shopID, err := utils.ExtractShopIDFromToken(tokenString)
		if err != nil || shopID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		computedHash := utils.HashToken(tokenString)

		// The session store is the source of truth: logout deletes the key,
		// which invalidates the token even before it expires.
		authCache := utils.GetAuthCacheClient()
		if authCache == nil {
			log.Printf("WARNING: Auth cache client not available. Falling back to shop lookup.")
			// Without the session store we can only verify the token signature
			// and that the shop still exists.
			if _, err := shops.FindByID(ctx, shopID); err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Authentication error",
					"code":  0,
				})
				return
			}
			c.Set("shopID", shopID)
			c.Next()
			return
		}

		storedHash, err := utils.GetShopSession(authCache, shopID)
		if err != nil {
			if errors.Is(err, redis.Nil) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Session expired",
					"code":  0,
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication error",
				"code":  0,
			})
			return
		}

		if storedHash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Token mismatch",
				"code":  0,
			})
			return
		}

		// Refresh the session TTL on each authenticated request.
		_ = authCache.Expire(ctx, utils.ShopSessionPrefix+shopID, 24*time.Hour).Err()

		c.Set("shopID", shopID)
		c.Next()
	}
}
