package middleware

import (
	"net/http"
	"strings"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/utils"
	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the bearer token and stores its claims under
// the "claims" key.
func JWTAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
			return
		}

		claims, err := utils.ValidateJWT(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Given token not valid for any token type"})
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}
