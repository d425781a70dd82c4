package middleware

import (
	"os"
	"time"

	"dealership/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the storefront/admin SPA origins. Defaults cover local dev
// servers; CORS_ALLOWED_ORIGINS overrides them.
func CORS() gin.HandlerFunc {
	origins := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
		"http://localhost:5173",
		"http://127.0.0.1:5173",
	}
	if env := utils.SplitCSVList(os.Getenv("CORS_ALLOWED_ORIGINS")); len(env) > 0 {
		origins = env
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID", "X-Document-Mode"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
