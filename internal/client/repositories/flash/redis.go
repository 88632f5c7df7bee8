// Package flash queues notifications for a browser session in redis so
// they survive the redirect that usually follows a form post.
package flash

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/prescreen/internal/client/notify"
	"github.com/redis/go-redis/v9"
)

func key(sid string) string {
	return "portal:flash:" + sid
}

type RedisRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisRepository(rdb redis.Cmdable, ttl time.Duration) *RedisRepository {
	return &RedisRepository{rdb: rdb, ttl: ttl}
}

// Push appends notifications to the session's queue.
func (r *RedisRepository) Push(ctx context.Context, sid string, items ...notify.Notification) error {
	if len(items) == 0 {
		return nil
	}
	values := make([]any, 0, len(items))
	for _, n := range items {
		raw, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("failed to encode flash: %w", err)
		}
		values = append(values, raw)
	}

	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, key(sid), values...)
		if r.ttl > 0 {
			p.Expire(ctx, key(sid), r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to push flash for %s: %w", sid, err)
	}
	return nil
}

// Pop returns and removes every queued notification, oldest first.
func (r *RedisRepository) Pop(ctx context.Context, sid string) ([]notify.Notification, error) {
	var lrange *redis.StringSliceCmd
	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		lrange = p.LRange(ctx, key(sid), 0, -1)
		p.Del(ctx, key(sid))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to pop flash for %s: %w", sid, err)
	}

	raw := lrange.Val()
	out := make([]notify.Notification, 0, len(raw))
	for _, s := range raw {
		var n notify.Notification
		if err := json.Unmarshal([]byte(s), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
