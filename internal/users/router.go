package users

import (
	"github.com/gin-gonic/gin"

	"ticketly/internal/shared/middleware"
)

func SetupUserRoutes(router *gin.RouterGroup, controller Controller) {
	userRoutes := router.Group("/users")
	{
		// Public profile lookup
		userRoutes.GET("/:userId", controller.GetUser)

		protected := userRoutes.Group("")
		protected.Use(middleware.JWTAuth())
		{
			protected.GET("/me", controller.GetMe)
			protected.PUT("/me", controller.UpdateMe)
		}
	}
}
