package middleware

import (
	"errors"
	"net/http"
	"strings"

	userRepo "talentsync/database/repository/user"
	"talentsync/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// JWTAuthMiddleware validates the bearer token, checks its hash against the
// auth cache (falling back to the user record on a cache miss) and sets
// userID/userRole in the request context.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, role, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + userID
		cache := utils.GetAuthCacheClient()

		storedHash, err := cache.Get(c.Request.Context(), cacheKey).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				utils.GetLogger().Warn("auth cache unavailable, falling back to store")
			}
			account, dbErr := users.GetByID(c.Request.Context(), userID)
			if dbErr != nil || account.TokenHash == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked or account not found"})
				return
			}
			storedHash = account.TokenHash
			_ = cache.Set(c.Request.Context(), cacheKey, storedHash, utils.AuthCacheTTL).Err()
		}

		if storedHash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}

		c.Set("userID", userID)
		c.Set("userRole", role)
		c.Next()
	}
}
