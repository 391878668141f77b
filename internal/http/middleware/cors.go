package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the admin front-end origins and exposes the tab and trace headers
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", TabIDHeader, TraceIDHeader, TraceParentHeader},
		ExposeHeaders:    []string{TabIDHeader, TraceIDHeader},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
