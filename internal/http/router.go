package api

import (
	"log"
	stdhttp "net/http"

	intconfig "dealership/internal/config"
	h "dealership/internal/http/handlers"
	"dealership/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, policy intconfig.PricingPolicy) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)
	h.SetPricingPolicy(policy)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		api.GET("/cars", h.GetCars)
		api.GET("/orders/:id", h.GetOrder)

		// Document exports require a signed-in staff/admin user.
		authed := api.Group("")
		authed.Use(middleware.RequireAuth(h.JWTSecret()))
		{
			exports := authed.Group("/exports")
			exports.GET("/catalog", h.ExportCatalog)
			exports.GET("/template", h.GetImportTemplate)

			authed.GET("/orders/:id/invoice", h.GetOrderInvoicePDF)
			authed.GET("/stock/:id/invoice", middleware.RequireRoles("admin", "staff"), h.GetStockInvoicePDF)
		}
	}

	return r
}
