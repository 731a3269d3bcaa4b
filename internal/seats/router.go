package seats

import (
	"github.com/gin-gonic/gin"

	"ticketly/internal/shared/middleware"
)

func SetupSeatRoutes(router *gin.RouterGroup, controller Controller) {
	// Public seat map for an event
	router.GET("/events/:eventId/seats", controller.ListForEvent)
	router.GET("/seats/:seatId", controller.GetSeat)

	// Admin-only seat map management
	admin := router.Group("/admin")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("/events/:eventId/seats", controller.BulkCreateSeats)
	}
}
