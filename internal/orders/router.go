package orders

import (
	"github.com/gin-gonic/gin"

	"ticketly/internal/shared/middleware"
)

func SetupOrderRoutes(router *gin.RouterGroup, controller Controller) {
	ordersGroup := router.Group("/orders")
	ordersGroup.Use(middleware.JWTAuth())
	{
		ordersGroup.POST("", controller.CreateOrder)
		ordersGroup.GET("", controller.ListMyOrders)
		ordersGroup.GET("/number/:orderNumber", controller.GetOrderByNumber)
		ordersGroup.GET("/:orderId", controller.GetOrder)
		ordersGroup.POST("/:orderId/cancel", controller.CancelOrder)
		ordersGroup.POST("/:orderId/payment", controller.ConfirmPayment)
	}
}
