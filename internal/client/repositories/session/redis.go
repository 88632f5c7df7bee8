package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/prescreen/internal/client/models"
	"github.com/redis/go-redis/v9"
)

// Key returns the redis key holding the record of browser session sid.
func Key(sid string) string {
	return "portal:session:" + sid
}

type RedisRepository struct {
	rdb redis.Cmdable
	key string
	ttl time.Duration
}

// NewRedisRepository binds a repository to one browser session. A zero ttl
// stores records without expiry.
func NewRedisRepository(rdb redis.Cmdable, sid string, ttl time.Duration) *RedisRepository {
	return &RedisRepository{rdb: rdb, key: Key(sid), ttl: ttl}
}

// Load reads the record and, when found, extends its TTL.
func (r *RedisRepository) Load(ctx context.Context) (*models.SessionRecord, error) {
	raw, err := r.rdb.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", r.key, err)
	}

	var rec models.SessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", r.key, err)
	}

	if r.ttl > 0 {
		if err := r.rdb.Expire(ctx, r.key, r.ttl).Err(); err != nil {
			return nil, fmt.Errorf("failed to refresh ttl of %s: %w", r.key, err)
		}
	}
	return &rec, nil
}

func (r *RedisRepository) Save(ctx context.Context, rec models.SessionRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.rdb.Set(ctx, r.key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", r.key, err)
	}
	return nil
}

func (r *RedisRepository) Clear(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.key, err)
	}
	return nil
}
