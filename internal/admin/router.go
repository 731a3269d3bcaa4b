package admin

import (
	"github.com/gin-gonic/gin"

	"ticketly/internal/shared/middleware"
)

func SetupAdminRoutes(router *gin.RouterGroup, controller Controller) {
	adminGroup := router.Group("/admin")
	adminGroup.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminGroup.GET("/dashboard", controller.GetDashboard)
		adminGroup.GET("/events/:eventId/stats", controller.GetEventStats)
		adminGroup.GET("/orders", controller.ListAllOrders)
		adminGroup.PUT("/orders/:orderId/status", controller.UpdateOrderStatus)
		adminGroup.GET("/users", controller.ListUsers)
	}
}
