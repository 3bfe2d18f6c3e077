package routes

import (
	"github.com/gin-gonic/gin"

	"aircraft_manager/internal/controllers"
)

func WebSocketRoutes(r *gin.Engine, ec *controllers.EventsController) {
	wsRoutes := r.Group("/ws")
	{
		wsRoutes.GET("/aircrafts", ec.HandleAircraftWebSocket)
	}
}
