package tickets

import (
	"github.com/gin-gonic/gin"

	"ticketly/internal/shared/middleware"
)

func SetupTicketRoutes(router *gin.RouterGroup, controller Controller) {
	ticketsGroup := router.Group("/tickets")
	ticketsGroup.Use(middleware.JWTAuth())
	{
		ticketsGroup.GET("", controller.ListMyTickets)
		ticketsGroup.GET("/:ticketCode", controller.GetMyTicket)
	}

	// Gate staff endpoints
	staff := router.Group("/admin/tickets")
	staff.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		staff.GET("/:ticketCode/verify", controller.VerifyTicket)
		staff.POST("/:ticketCode/check-in", controller.CheckIn)
	}
}
