// Package redisx provides the Redis client and the fixed-window counter
// used for rate limiting across processes.
package redisx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"portfolio-api/internal/config"
)

// Client is an alias for a Redis client
type Client = redis.Client

// Open creates a new Redis client based on configuration.
// It returns a nil client when Redis is not configured.
func Open(cfg *config.Config) (*Client, func(), error) {
	if cfg.Redis.Addr == "" {
		return nil, func() {}, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, func() {}, err
	}
	closer := func() { _ = rdb.Close() }
	return rdb, closer, nil
}

// The window starts with the first hit and expires as a whole.
var fixedWindow = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then redis.call('PEXPIRE', KEYS[1], ARGV[1]) end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {current, ttl}`)

// Hit counts one request against key and reports the hits in the current
// window and the time until the window resets.
func Hit(ctx context.Context, rdb *Client, key string, window time.Duration) (int64, time.Duration, error) {
	res, err := fixedWindow.Run(ctx, rdb, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(res) != 2 {
		return 0, 0, fmt.Errorf("redisx: unexpected window reply %v", res)
	}
	return res[0], time.Duration(res[1]) * time.Millisecond, nil
}
