//go:build integration
// +build integration

package mw

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"portfolio-api/internal/httpx/kit/testutil"
)

func Test_RateLimit_With_RedisContainer(t *testing.T) {
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
	rdb := redis.NewClient(opts)
	defer rdb.Close()

	rule := func() Rule { return Rule{Name: "contact", Max: 2, Window: time.Minute, Message: "slow down"} }
	// two processes sharing one counter
	newApp := func() *fiber.App {
		return testutil.NewApp(func(app *fiber.App) {
			app.Use(RateLimit(rdb, rule, nil))
			app.Get("/x", func(c *fiber.Ctx) error { return c.SendString("ok") })
		})
	}
	a, b := newApp(), newApp()

	res := hit(t, a, http.MethodGet, "/x")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("first: %d", res.StatusCode)
	}
	if res.Header.Get("X-RateLimit-Limit") != "2" || res.Header.Get("X-RateLimit-Remaining") != "1" {
		t.Fatalf("headers: %v", res.Header)
	}
	if res := hit(t, b, http.MethodGet, "/x"); res.StatusCode != http.StatusOK {
		t.Fatalf("second (other app): %d", res.StatusCode)
	}
	res = hit(t, a, http.MethodGet, "/x")
	if res.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("third: expected 429, got %d", res.StatusCode)
	}
	if ra := res.Header.Get(fiber.HeaderRetryAfter); ra == "" || ra == "0" {
		t.Fatalf("Retry-After: %q", ra)
	}
	if res.Header.Get("X-RateLimit-Remaining") != "0" {
		t.Fatalf("remaining: %q", res.Header.Get("X-RateLimit-Remaining"))
	}
}
