package mw

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"portfolio-api/internal/httpx/kit/testutil"
)

func hit(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()
	res, err := app.Test(httptest.NewRequest(method, path, nil))
	if err != nil {
		t.Fatalf("request err: %v", err)
	}
	return res
}

func TestRateLimit_LocalRejectsOverBudget(t *testing.T) {
	rule := func() Rule {
		return Rule{Name: "api", Max: 2, Window: time.Minute, Message: "Too many requests from this IP, please try again later."}
	}
	app := testutil.NewApp(func(app *fiber.App) {
		app.Use(RateLimit(nil, rule, nil))
		app.Get("/x", func(c *fiber.Ctx) error { return c.SendString("ok") })
	})

	for i := 0; i < 2; i++ {
		if res := hit(t, app, http.MethodGet, "/x"); res.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status %d", i, res.StatusCode)
		}
	}
	res := hit(t, app, http.MethodGet, "/x")
	if res.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", res.StatusCode)
	}
	if res.Header.Get(fiber.HeaderRetryAfter) == "" {
		t.Fatalf("missing Retry-After")
	}
	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["success"] != false || body["message"] != "Too many requests from this IP, please try again later." {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRateLimit_NextSkipsUncoveredRoutes(t *testing.T) {
	rule := func() Rule { return Rule{Name: "contact", Max: 1, Window: time.Hour, Message: "slow"} }
	onlyPost := func(c *fiber.Ctx) bool { return c.Method() != fiber.MethodPost }
	app := testutil.NewApp(func(app *fiber.App) {
		app.Use(RateLimit(nil, rule, onlyPost))
		app.All("/x", func(c *fiber.Ctx) error { return c.SendString("ok") })
	})

	for i := 0; i < 3; i++ {
		if res := hit(t, app, http.MethodGet, "/x"); res.StatusCode != http.StatusOK {
			t.Fatalf("GET must not be limited, got %d", res.StatusCode)
		}
	}
	if res := hit(t, app, http.MethodPost, "/x"); res.StatusCode != http.StatusOK {
		t.Fatalf("first POST: %d", res.StatusCode)
	}
	if res := hit(t, app, http.MethodPost, "/x"); res.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("second POST: %d", res.StatusCode)
	}
}

func TestRateLimit_LocalPicksUpNewBudget(t *testing.T) {
	var max atomic.Int64
	max.Store(1)
	rule := func() Rule { return Rule{Name: "api", Max: int(max.Load()), Window: time.Minute, Message: "slow"} }
	app := testutil.NewApp(func(app *fiber.App) {
		app.Use(RateLimit(nil, rule, nil))
		app.Get("/x", func(c *fiber.Ctx) error { return c.SendString("ok") })
	})

	hit(t, app, http.MethodGet, "/x")
	if res := hit(t, app, http.MethodGet, "/x"); res.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 under max=1, got %d", res.StatusCode)
	}

	max.Store(3)
	for i := 0; i < 3; i++ {
		if res := hit(t, app, http.MethodGet, "/x"); res.StatusCode != http.StatusOK {
			t.Fatalf("request %d after reload: %d", i, res.StatusCode)
		}
	}
	if res := hit(t, app, http.MethodGet, "/x"); res.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 under max=3, got %d", res.StatusCode)
	}
}

func TestRateLimit_RedisDownFailsOpen(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 50 * time.Millisecond})
	defer rdb.Close()
	rule := func() Rule { return Rule{Name: "api", Max: 1, Window: time.Minute, Message: "slow"} }
	app := testutil.NewApp(func(app *fiber.App) {
		app.Use(RateLimit(rdb, rule, nil))
		app.Get("/x", func(c *fiber.Ctx) error { return c.SendString("ok") })
	})

	for i := 0; i < 3; i++ {
		res := hit(t, app, http.MethodGet, "/x")
		if res.StatusCode != http.StatusOK {
			t.Fatalf("request %d: expected pass-through, got %d", i, res.StatusCode)
		}
		if res.Header.Get("X-RateLimit-Limit") != "" {
			t.Fatalf("no budget headers without a counter")
		}
	}
}
