package routes

import (
	"github.com/gin-gonic/gin"

	"aircraft_manager/internal/middleware"
)

func AircraftRoutes(r *gin.Engine, deps Dependencies) {
	aircraft := r.Group("/aircrafts")
	{
		aircraft.GET("/", deps.Aircraft.ListAircraft)
		aircraft.GET("/performance/range/:aircraft_id/:wind_speed/:fuel", deps.Performance.GetRange)
		aircraft.GET("/performance/endurance/:aircraft_id/:fuel", deps.Performance.GetEndurance)
	}

	manage := r.Group("/aircrafts")
	if len(deps.AuthSecret) > 0 {
		manage.Use(middleware.RequireAuth(deps.AuthSecret))
	}
	{
		manage.POST("/add_aircraft/", deps.Aircraft.CreateAircraft)
		manage.PATCH("/update_aircraft/:id", deps.Aircraft.UpdateAircraft)
		manage.DELETE("/delete_aircraft/:id", deps.Aircraft.DeleteAircraft)
	}
}
