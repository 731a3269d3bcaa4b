package auth

import (
	"github.com/gin-gonic/gin"

	"ticketly/internal/shared/middleware"
)

func SetupAuthRoutes(router *gin.RouterGroup, controller *Controller) {
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", controller.Register)
		authRoutes.POST("/login", controller.Login)
		authRoutes.POST("/refresh", controller.RefreshToken)

		protected := authRoutes.Group("")
		protected.Use(middleware.JWTAuth())
		{
			protected.PUT("/change-password", controller.ChangePassword)
		}
	}
}
