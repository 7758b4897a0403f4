// Package mw holds the HTTP middleware shared by the resource routes.
package mw

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"portfolio-api/internal/httpx/kit"
	"portfolio-api/internal/logx"
	"portfolio-api/internal/redisx"
)

var mwLogger = logx.GetScope("ratelimit")

// Rule is one fixed-window admission rule keyed by client IP.
type Rule struct {
	Name    string // counter namespace, e.g. "api" or "contact"
	Max     int
	Window  time.Duration
	Message string
}

// RuleFunc returns the rule in force. It is consulted on every request so
// that hot-reloaded limits apply without a restart.
type RuleFunc func() Rule

// RateLimit rejects a client once it exceeds the rule's budget within the
// current window. Counters live in Redis when rdb is set, which shares them
// across processes, and in the process otherwise. next, when set, skips
// requests the rule does not cover.
func RateLimit(rdb *redisx.Client, rule RuleFunc, next func(*fiber.Ctx) bool) fiber.Handler {
	if rdb == nil {
		return localLimiter(rule, next)
	}
	return func(c *fiber.Ctx) error {
		if next != nil && next(c) {
			return c.Next()
		}
		r := rule()
		key := "rl:" + r.Name + ":" + c.IP()
		ctx, cancel := context.WithTimeout(c.Context(), 200*time.Millisecond)
		defer cancel()
		n, ttl, err := redisx.Hit(ctx, rdb, key, r.Window)
		if err != nil {
			// fail open
			mwLogger.Warn("rate limit counter unavailable", zap.String("rule", r.Name), zap.Error(err))
			return c.Next()
		}
		remaining := lo.Max([]int64{0, int64(r.Max) - n})
		setHeaders(c, r.Max, remaining, ttl)
		if n > int64(r.Max) {
			c.Set(fiber.HeaderRetryAfter, strconv.FormatInt(seconds(ttl), 10))
			return kit.TooManyRequests(r.Message)
		}
		return c.Next()
	}
}

func setHeaders(c *fiber.Ctx, max int, remaining int64, reset time.Duration) {
	c.Set("X-RateLimit-Limit", strconv.Itoa(max))
	c.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
	c.Set("X-RateLimit-Reset", strconv.FormatInt(seconds(reset), 10))
}

func seconds(d time.Duration) int64 {
	return int64(math.Ceil(d.Seconds()))
}

// localLimiter runs fiber's fixed-window limiter and rebuilds it whenever the
// rule's budget changes. A rebuild starts fresh counters.
func localLimiter(rule RuleFunc, next func(*fiber.Ctx) bool) fiber.Handler {
	var (
		mu      sync.Mutex
		current Rule
		handler fiber.Handler
	)
	build := func(r Rule) fiber.Handler {
		return limiter.New(limiter.Config{
			Next:              next,
			Max:               r.Max,
			Expiration:        r.Window,
			LimiterMiddleware: limiter.FixedWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return r.Name + ":" + c.IP() },
			LimitReached: func(_ *fiber.Ctx) error {
				return kit.TooManyRequests(r.Message)
			},
		})
	}
	return func(c *fiber.Ctx) error {
		r := rule()
		mu.Lock()
		if handler == nil || r.Max != current.Max || r.Window != current.Window || r.Message != current.Message {
			if handler != nil {
				mwLogger.Sugar().Infof("rate limit %s reloaded: %d per %s", r.Name, r.Max, r.Window)
			}
			current, handler = r, build(r)
		}
		h := handler
		mu.Unlock()
		return h(c)
	}
}
