// Package projects provides HTTP handlers for portfolio projects.
package projects

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"portfolio-api/internal/esx"
	"portfolio-api/internal/httpx/kit"
	"portfolio-api/internal/httpx/resource"
	"portfolio-api/internal/logx"
	"portfolio-api/internal/model"
	"portfolio-api/internal/mqx"
	"portfolio-api/internal/store"
)

var projectsLogger = logx.GetScope("projects")

// Register mounts /projects on r. Search is answered from ix when it is set.
func Register(r fiber.Router, projects store.Collection[model.Project], ix *esx.Index, events *mqx.Events) {
	res := &resource.Resource[model.Project]{
		Name:   "project",
		Store:  projects,
		New:    model.NewProject,
		Filter: listFilter,
		Messages: resource.Messages{
			Created:  "Project created successfully",
			Updated:  "Project updated successfully",
			Deleted:  "Project deleted successfully",
			NotFound: "Project not found",
		},
		Events: events,
		OnWrite: func(ctx context.Context, p *model.Project) {
			if err := ix.PutProject(ctx, p); err != nil {
				projectsLogger.Warn("index project failed", zap.String("id", p.ID), zap.Error(err))
			}
		},
		OnDelete: func(ctx context.Context, id string) {
			if err := ix.DeleteProject(ctx, id); err != nil {
				projectsLogger.Warn("unindex project failed", zap.String("id", id), zap.Error(err))
			}
		},
	}
	g := r.Group("/projects")
	// before /:id
	g.Get("/search", SearchProjectsHandler(projects, ix))
	res.Mount(g)
}

// listFilter reads ?category, ?status and ?featured. Any featured value other
// than "true" selects the non-featured projects.
func listFilter(c *fiber.Ctx) store.Filter {
	f := store.Filter{}
	if v := c.Query("category"); v != "" {
		f["category"] = v
	}
	if v := c.Query("status"); v != "" {
		f["status"] = v
	}
	if v := c.Query("featured"); v != "" {
		f["featured"] = v == "true"
	}
	return f
}

// SearchProjectsHandler runs a full-text query and answers the matching
// projects, best match first.
func SearchProjectsHandler(projects store.Collection[model.Project], ix *esx.Index) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !ix.Enabled() {
			return kit.ServiceUnavailable("Search is not configured")
		}
		q := strings.TrimSpace(c.Query("q"))
		if q == "" {
			return kit.BadRequest("Search query is required", fiber.Map{"field": "q"})
		}
		size := lo.Clamp(c.QueryInt("limit", 20), 1, kit.MaxPageLimit)

		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		ids, err := ix.SearchProjects(ctx, q, size)
		if err != nil {
			return kit.InternalError("search failed", err.Error())
		}
		out := make([]*model.Project, 0, len(ids))
		for _, id := range ids {
			p, err := projects.FindByID(ctx, id)
			if errors.Is(err, store.ErrNotFound) {
				// index lags behind a delete
				continue
			}
			if err != nil {
				return err
			}
			out = append(out, p)
		}
		return kit.List(c, out)
	}
}
