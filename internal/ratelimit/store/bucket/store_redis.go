package bucket

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shoplist/internal/ratelimit/models"
)

const keyPrefix = "shoplist:ratelimit:"

// Redis is a fixed-window counter shared by every server instance.
// Each window is one INCR plus an EXPIRE NX on the first hit.
type Redis struct {
	client redis.Cmdable
	now    func() time.Time
}

func NewRedis(client redis.Cmdable) *Redis {
	return &Redis{client: client, now: time.Now}
}

func (s *Redis) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error) {
	full := keyPrefix + key

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, full)
		p.ExpireNX(ctx, full, window)
		ttl = p.PTTL(ctx, full)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("count request: %w", err)
	}

	remainingTTL := ttl.Val()
	if remainingTTL <= 0 {
		remainingTTL = window
	}
	count := int(incr.Val())
	return &models.Result{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: max(limit-count, 0),
		ResetAt:   s.now().Add(remainingTTL),
	}, nil
}

func (s *Redis) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("reset counter: %w", err)
	}
	return nil
}
