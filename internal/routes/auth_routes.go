package routes

import (
	"github.com/gin-gonic/gin"

	"aircraft_manager/internal/controllers"
)

func AuthRoutes(r *gin.Engine, ac *controllers.AuthController) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", ac.Login)
	}
}
