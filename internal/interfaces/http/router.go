package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parkline/parkline/internal/interfaces/http/middleware"
	"github.com/parkline/parkline/internal/interfaces/http/routes"
	"github.com/parkline/parkline/internal/shared/version"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log.Named("http")))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	if c.cfg.Metrics.Enabled {
		c.engine.Use(middleware.Metrics(c.metrics))
		c.engine.GET(c.cfg.Metrics.Path, gin.WrapH(c.metrics.Handler()))
	}

	c.engine.GET("/health", c.hdlrs.healthHandler.Health)
	c.engine.GET("/version", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, version.Get())
	})

	api := c.engine.Group("/api/v1")
	routes.SetupParkingRoutes(api, &routes.ParkingRouteConfig{
		ParkingHandler: c.hdlrs.parkingHandler,
		WriteLimiter:   c.writeLimiter(),
	})
}

// writeLimiter throttles ticket writes per client IP. It is a pass-through
// without Redis or with a zero limit.
func (c *Container) writeLimiter() gin.HandlerFunc {
	if c.redis == nil || c.cfg.Server.RateLimitPerMinute <= 0 {
		return func(ctx *gin.Context) { ctx.Next() }
	}
	return middleware.NewRateLimiter(c.redis, c.cfg.Server.RateLimitPerMinute, time.Minute, c.log).Limit()
}
