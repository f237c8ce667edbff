package http

import (
	"github.com/parkline/parkline/internal/interfaces/http/handlers/health"
	"github.com/parkline/parkline/internal/interfaces/http/handlers/parking"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	parkingHandler *parking.ParkingHandler
	healthHandler  *health.Handler
}

func newHandlers(c *Container) *allHandlers {
	var checks []health.Check
	checks = append(checks, health.DatabaseCheck(c.db))
	if c.redis != nil {
		checks = append(checks, health.RedisCheck(c.redis))
	}

	return &allHandlers{
		parkingHandler: parking.NewParkingHandler(
			c.ucs.registerEntryUC,
			c.ucs.processExitUC,
			c.ucs.getTicketUC,
			c.ucs.grantFreeHoursUC,
			c.log.Named("http"),
		),
		healthHandler: health.NewHandler(checks...),
	}
}
