// Package httpx assembles the HTTP surface: middleware, the /api routes and
// the catch-all not-found responder.
package httpx

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"portfolio-api/internal/config"
	"portfolio-api/internal/db"
	"portfolio-api/internal/esx"
	"portfolio-api/internal/httpx/contact"
	"portfolio-api/internal/httpx/journey"
	"portfolio-api/internal/httpx/mw"
	"portfolio-api/internal/httpx/projects"
	"portfolio-api/internal/httpx/skills"
	"portfolio-api/internal/mqx"
	"portfolio-api/internal/notify"
	"portfolio-api/internal/redisx"
)

// Providers are the collaborators the routes need. Only Stores and Config are
// required; a nil Notifier, Events, Search or Redis disables that feature.
type Providers struct {
	Stores   *db.Stores
	Config   *config.Store
	Notifier notify.Notifier
	Events   *mqx.Events
	Search   *esx.Index
	Redis    *redisx.Client
}

const (
	generalLimitMessage = "Too many requests from this IP, please try again later."
	contactLimitMessage = "Too many contact form submissions, please try again later."
)

// Register mounts /health, /api and the not-found fallback on app.
func Register(app *fiber.App, p Providers) {
	app.Get("/health", HealthHandler(time.Now()))

	api := app.Group("/api")
	// contact limiter ahead of the general one
	api.Use(mw.RateLimit(p.Redis, contactRule(p.Config), notContactSubmit))
	api.Use(mw.RateLimit(p.Redis, generalRule(p.Config), nil))

	contact.Register(api, p.Stores.Contacts, p.Notifier, p.Events)
	projects.Register(api, p.Stores.Projects, p.Search, p.Events)
	skills.Register(api, p.Stores.Skills, p.Events)
	journey.Register(api, p.Stores.Journeys, p.Events)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Route not found"})
	})
}

func generalRule(s *config.Store) mw.RuleFunc {
	return func() mw.Rule {
		rl := s.Get().RateLimit
		return mw.Rule{Name: "api", Max: rl.Max, Window: rl.Window, Message: generalLimitMessage}
	}
}

func contactRule(s *config.Store) mw.RuleFunc {
	return func() mw.Rule {
		rl := s.Get().RateLimit
		return mw.Rule{Name: "contact", Max: rl.ContactMax, Window: rl.ContactWindow, Message: contactLimitMessage}
	}
}

func notContactSubmit(c *fiber.Ctx) bool {
	return c.Method() != fiber.MethodPost || strings.TrimSuffix(c.Path(), "/") != "/api/contact"
}
