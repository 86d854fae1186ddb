// Package routes wires the HTTP surface onto the gin router.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/syllabot/syllabot/internal/app/controllers"
	"github.com/syllabot/syllabot/internal/middleware"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Webhook *controllers.WebhookController
	Admin   *controllers.AdminController
	Health  *controllers.HealthController
}

// SetupRoutes registers all routes. Admin routes are only mounted when
// an auth middleware is supplied; with no admin secret configured the
// reload surface simply does not exist.
func SetupRoutes(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/health", c.Health.Health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/webhook", c.Webhook.Handle)

		if authMiddleware != nil {
			admin := v1.Group("/admin")
			{
				admin.POST("/token", c.Admin.Token)
				admin.POST("/reload", authMiddleware.JWTAuth(), c.Admin.Reload)
			}
		}
	}
}
