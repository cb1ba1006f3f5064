package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows every origin outside production and only the
// configured origins in production.
func CORSMiddleware(production bool, allowedOrigins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	switch {
	case !production:
		config.AllowOriginFunc = func(origin string) bool { return true }
	case len(allowedOrigins) > 0:
		config.AllowOrigins = allowedOrigins
	default:
		config.AllowOriginFunc = func(origin string) bool { return false }
	}

	return cors.New(config)
}
