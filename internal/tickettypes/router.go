package tickettypes

import (
	"github.com/gin-gonic/gin"

	"ticketly/internal/shared/middleware"
)

func SetupTicketTypeRoutes(router *gin.RouterGroup, controller Controller) {
	// Public listing of purchasable ticket types for an event
	router.GET("/events/:eventId/ticket-types", controller.ListForEvent)
	router.GET("/ticket-types/:ticketTypeId", controller.GetTicketType)

	// Admin-only management
	admin := router.Group("/admin")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("/events/:eventId/ticket-types", controller.CreateTicketType)
		admin.PUT("/ticket-types/:ticketTypeId", controller.UpdateTicketType)
		admin.DELETE("/ticket-types/:ticketTypeId", controller.DeleteTicketType)
	}
}
