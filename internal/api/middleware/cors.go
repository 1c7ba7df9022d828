package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robcowart/portfolio/internal/config"
)

// CORSMiddleware allows cross-origin requests from the configured origins.
// It is a no-op unless CORS is enabled.
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	if !cfg.Security.CORSEnabled || len(cfg.Security.CORSOrigins) == 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     cfg.Security.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
