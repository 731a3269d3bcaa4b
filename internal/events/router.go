package events

import (
	"github.com/gin-gonic/gin"

	"ticketly/internal/shared/middleware"
)

func SetupEventRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes for browsing the catalog
	publicEvents := router.Group("/events")
	{
		publicEvents.GET("", controller.ListEvents)
		publicEvents.GET("/upcoming", controller.GetUpcomingEvents)
		publicEvents.GET("/:eventId", controller.GetEvent)
		publicEvents.GET("/slug/:slug", controller.GetEventBySlug)
	}

	// Admin-only event management
	adminEvents := router.Group("/admin/events")
	adminEvents.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminEvents.POST("", controller.CreateEvent)
		adminEvents.PUT("/:eventId", controller.UpdateEvent)
		adminEvents.DELETE("/:eventId", controller.DeleteEvent)
	}
}
