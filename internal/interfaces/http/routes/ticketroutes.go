package routes

import (
	"github.com/gin-gonic/gin"

	parkinghandlers "github.com/parkline/parkline/internal/interfaces/http/handlers/parking"
)

type ParkingRouteConfig struct {
	ParkingHandler *parkinghandlers.ParkingHandler
	// WriteLimiter guards the state-changing endpoints.
	WriteLimiter gin.HandlerFunc
}

func SetupParkingRoutes(group *gin.RouterGroup, config *ParkingRouteConfig) {
	limit := config.WriteLimiter
	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}

	tickets := group.Group("/tickets")
	{
		tickets.POST("",
			limit,
			config.ParkingHandler.RegisterEntry)

		// action endpoints before /:id
		tickets.POST("/:id/exit",
			limit,
			config.ParkingHandler.ProcessExit)
		tickets.POST("/:id/free-hours",
			limit,
			config.ParkingHandler.GrantFreeHours)

		tickets.GET("/:id",
			config.ParkingHandler.GetTicket)
	}
}
