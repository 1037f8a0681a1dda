package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"proxi_back_end/internal/database"
)

const (
	// Limites par endpoint
	SearchMaxRequests = 120 // par minute et par IP (l'extension interroge à chaque page produit)
	AuthMaxAttempts   = 10

	SearchCooldown = 1 * time.Minute
	AuthCooldown   = 15 * time.Minute
)

// APIRateLimit limite les requêtes par IP via un compteur Redis. Sans Redis,
// on laisse passer : la limitation est une protection, pas une fonctionnalité.
func APIRateLimit(maxRequests int, cooldown time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if database.Redis == nil {
			c.Next()
			return
		}

		ctx := context.Background()
		key := fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), c.ClientIP())

		count, err := database.Redis.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			database.Redis.Expire(ctx, key, cooldown)
		}

		if count > int64(maxRequests) {
			ttl := database.Redis.TTL(ctx, key).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Trop de requêtes. Réessayez plus tard",
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
