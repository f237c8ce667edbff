package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/parkline/parkline/internal/domain/ticket"
	"github.com/parkline/parkline/internal/shared/constants"
	"github.com/parkline/parkline/internal/shared/id"
	"github.com/parkline/parkline/internal/shared/logger"
)

const defaultExitGuardTTL = 30 * time.Second

// releaseScript deletes the key only while it still holds our token, so a
// guard that expired and was taken by another exit is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisExitGuard rejects a second exit for a ticket while the first is still
// running. The database transaction remains the source of truth.
type RedisExitGuard struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger logger.Interface
}

func NewRedisExitGuard(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisExitGuard {
	if ttl <= 0 {
		ttl = defaultExitGuardTTL
	}
	return &RedisExitGuard{
		client: client,
		prefix: constants.RedisKeyExitGuard,
		ttl:    ttl,
		logger: logger,
	}
}

// Acquire takes the guard for ticketID. It returns ticket.ErrExitInProgress
// when another holder has it.
func (g *RedisExitGuard) Acquire(ctx context.Context, ticketID uint) (func(), error) {
	token, err := id.Generate(16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate guard token: %w", err)
	}

	key := g.buildKey(ticketID)
	ok, err := g.client.SetNX(ctx, key, token, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire exit guard: %w", err)
	}
	if !ok {
		return nil, ticket.ErrExitInProgress
	}

	release := func() {
		// the request context may already be cancelled
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, g.client, []string{key}, token).Err(); err != nil {
			g.logger.Warnw("failed to release exit guard", "ticket_id", ticketID, "error", err)
		}
	}
	return release, nil
}

func (g *RedisExitGuard) buildKey(ticketID uint) string {
	return g.prefix + strconv.FormatUint(uint64(ticketID), 10)
}
