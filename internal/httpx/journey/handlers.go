// Package journey provides HTTP handlers for career timeline entries.
package journey

import (
	"github.com/gofiber/fiber/v2"

	"portfolio-api/internal/httpx/resource"
	"portfolio-api/internal/model"
	"portfolio-api/internal/mqx"
	"portfolio-api/internal/store"
)

func Register(r fiber.Router, journeys store.Collection[model.Journey], events *mqx.Events) {
	res := &resource.Resource[model.Journey]{
		Name:  "journey",
		Store: journeys,
		New:   model.NewJourney,
		Filter: func(c *fiber.Ctx) store.Filter {
			f := store.Filter{}
			if v := c.Query("type"); v != "" {
				f["type"] = v
			}
			return f
		},
		Messages: resource.Messages{
			Created:  "Journey entry created successfully",
			Updated:  "Journey entry updated successfully",
			Deleted:  "Journey entry deleted successfully",
			NotFound: "Journey entry not found",
		},
		Events: events,
	}
	res.Mount(r.Group("/journey"))
}
