package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/parkline/parkline/internal/application/parking/usecases"
	"github.com/parkline/parkline/internal/infrastructure/config"
	"github.com/parkline/parkline/internal/infrastructure/metrics"
	"github.com/parkline/parkline/internal/infrastructure/scheduler"
	"github.com/parkline/parkline/internal/shared/logger"
)

// Container holds the infrastructure components, use cases, handlers and
// background jobs, and wires them together.
type Container struct {
	// Core infrastructure
	engine  *gin.Engine
	db      *gorm.DB
	cfg     *config.Config
	log     logger.Interface
	redis   *redis.Client
	metrics *metrics.Metrics

	repos usecases.Repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Background jobs
	cycleResetScheduler *scheduler.CycleResetScheduler
}

// NewContainer wires every component. Redis is optional: without it exits
// rely on database locking alone.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, Metrics, Repositories
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Parking - UseCases, Handlers
	c.initParking()

	// Section 3: Background jobs
	if err := c.initScheduler(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) initInfrastructure() error {
	if c.cfg.Redis.Enabled {
		client, err := initRedis(&c.cfg.Redis, c.log)
		if err != nil {
			return err
		}
		c.redis = client
	}

	c.metrics = metrics.NewMetrics(prometheus.NewRegistry())
	c.repos = newRepositories(c.db, c.log)
	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.RedisConfig, log logger.Interface) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.GetAddr(), err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.GetAddr())

	return client, nil
}

func (c *Container) initParking() {
	c.ucs = newUseCases(c)
	c.hdlrs = newHandlers(c)
}

func (c *Container) initScheduler() error {
	if !c.cfg.Scheduler.Enabled {
		c.log.Infow("cycle reset scheduler disabled")
		return nil
	}

	s, err := scheduler.NewCycleResetScheduler(
		c.ucs.resetSubscriptionCyclesUC,
		c.cfg.Scheduler.CycleResetCron,
		c.metrics,
		c.log.Named("scheduler"),
	)
	if err != nil {
		return err
	}
	c.cycleResetScheduler = s
	return nil
}

// Engine returns the configured gin engine. Call SetupRoutes first.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// StartBackground starts the background jobs. They stop when ctx is
// cancelled or Shutdown is called.
func (c *Container) StartBackground(ctx context.Context) error {
	if c.cycleResetScheduler == nil {
		return nil
	}
	return c.cycleResetScheduler.Start(ctx)
}

// Shutdown stops background jobs and closes Redis. The database is owned by
// the caller.
func (c *Container) Shutdown() {
	if c.cycleResetScheduler != nil {
		c.cycleResetScheduler.Stop()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close Redis client", "error", err)
		}
	}
	c.log.Infow("container shut down")
}
