package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/maisonthread/storefront/config"
	"github.com/maisonthread/storefront/utils"
)

// AuthMiddleware guards the admin endpoints. Without a configured JWT
// secret it only requires a non-empty bearer token, mirroring the original
// deployment where the token issuer was trusted upstream. With a secret set
// every token is verified as an HMAC-signed JWT.
func AuthMiddleware(cfg *config.EnvConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.ExtractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			c.Abort()
			return
		}

		if cfg.JWT.SecretKey == "" {
			c.Next()
			return
		}

		parsed, err := utils.ParseToken(token, cfg)
		if err != nil || !parsed.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			c.Abort()
			return
		}

		if claims, ok := parsed.Claims.(jwt.MapClaims); ok {
			if sub, ok := claims["sub"].(string); ok {
				c.Set("admin_user", sub)
			}
		}

		c.Next()
	}
}
