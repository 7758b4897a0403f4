// Package skills provides HTTP handlers for skills.
package skills

import (
	"github.com/gofiber/fiber/v2"

	"portfolio-api/internal/httpx/resource"
	"portfolio-api/internal/model"
	"portfolio-api/internal/mqx"
	"portfolio-api/internal/store"
)

// Register mounts /skills on r.
func Register(r fiber.Router, skills store.Collection[model.Skill], events *mqx.Events) {
	res := &resource.Resource[model.Skill]{
		Name:  "skill",
		Store: skills,
		New:   model.NewSkill,
		Filter: func(c *fiber.Ctx) store.Filter {
			f := store.Filter{}
			if v := c.Query("category"); v != "" {
				f["category"] = v
			}
			return f
		},
		Messages: resource.Messages{
			Created:  "Skill created successfully",
			Updated:  "Skill updated successfully",
			Deleted:  "Skill deleted successfully",
			NotFound: "Skill not found",
		},
		Events: events,
	}
	res.Mount(r.Group("/skills"))
}
