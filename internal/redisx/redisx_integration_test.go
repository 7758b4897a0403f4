//go:build integration
// +build integration

package redisx

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"portfolio-api/internal/config"
)

func Test_Hit_With_RedisContainer(t *testing.T) {
	ctx := context.Background()

	rc, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("start redis: %v", err)
	}
	t.Cleanup(func() { _ = rc.Terminate(ctx) })

	uri, err := rc.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}
	opts, err := redis.ParseURL(uri)
	if err != nil {
		t.Fatalf("parse %s: %v", uri, err)
	}
	cfg := config.FromEnv()
	cfg.Redis.Addr = opts.Addr
	rdb, closeFn, err := Open(cfg)
	if err != nil || rdb == nil {
		t.Fatalf("open redis: %v", err)
	}
	defer closeFn()

	window := time.Second
	for i := int64(1); i <= 3; i++ {
		n, ttl, err := Hit(ctx, rdb, "rl:test:1.2.3.4", window)
		if err != nil {
			t.Fatalf("hit %d: %v", i, err)
		}
		if n != i {
			t.Fatalf("hit %d: counter %d", i, n)
		}
		if ttl <= 0 || ttl > window {
			t.Fatalf("hit %d: ttl %v outside (0, %v]", i, ttl, window)
		}
	}

	// another key has its own window
	if n, _, err := Hit(ctx, rdb, "rl:test:5.6.7.8", window); err != nil || n != 1 {
		t.Fatalf("separate key: %d %v", n, err)
	}

	// a key left without expiry gets the window again
	if err := rdb.Set(ctx, "rl:test:stale", 7, 0).Err(); err != nil {
		t.Fatalf("seed stale key: %v", err)
	}
	n, ttl, err := Hit(ctx, rdb, "rl:test:stale", window)
	if err != nil || n != 8 || ttl != window {
		t.Fatalf("stale key: n=%d ttl=%v err=%v", n, ttl, err)
	}

	time.Sleep(window + 200*time.Millisecond)
	if n, _, err := Hit(ctx, rdb, "rl:test:1.2.3.4", window); err != nil || n != 1 {
		t.Fatalf("expected a fresh window, got %d %v", n, err)
	}
}
