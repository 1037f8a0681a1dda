package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireMerchant protège les routes du dashboard propriétaire : réservées
// aux comptes commerçants rattachés à un magasin. À chaîner après AuthRequired.
func RequireMerchant() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "merchant" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux commerçants"})
			c.Abort()
			return
		}
		if c.GetString("store_id") == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Aucun magasin rattaché à ce compte"})
			c.Abort()
			return
		}
		c.Next()
	}
}
