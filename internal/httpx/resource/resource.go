// Package resource implements the list/get/create/update/delete handlers
// shared by the project, skill and journey routes.
package resource

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"portfolio-api/internal/httpx/kit"
	"portfolio-api/internal/mqx"
	"portfolio-api/internal/store"
	"portfolio-api/internal/validation"
)

const requestTimeout = 5 * time.Second

// Messages are the per-resource texts of the success and not-found responses.
type Messages struct {
	Created  string
	Updated  string
	Deleted  string
	NotFound string
}

// FilterFunc extracts the list filter from the query string.
type FilterFunc func(c *fiber.Ctx) store.Filter

// Resource binds one collection to HTTP handlers.
type Resource[T any] struct {
	// Name prefixes the emitted event types, e.g. "project".
	Name     string
	Store    store.Collection[T]
	New      func() *T
	Filter   FilterFunc
	Messages Messages
	Events   *mqx.Events

	// OnWrite and OnDelete run after a successful write. They are best-effort.
	OnWrite  func(ctx context.Context, doc *T)
	OnDelete func(ctx context.Context, id string)
}

// Mount registers the five routes under r.
func (res *Resource[T]) Mount(r fiber.Router) {
	r.Get("/", res.List())
	r.Get("/:id", res.Get())
	r.Post("/", res.Create())
	r.Put("/:id", res.Update())
	r.Delete("/:id", res.Delete())
}

// List answers {success, count, data} in the collection's sort order.
func (res *Resource[T]) List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
		defer cancel()
		var f store.Filter
		if res.Filter != nil {
			f = res.Filter(c)
		}
		items, err := res.Store.Find(ctx, store.Query{Filter: f})
		if err != nil {
			return err
		}
		return kit.List(c, items)
	}
}

func (res *Resource[T]) Get() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
		defer cancel()
		doc, err := res.Store.FindByID(ctx, c.Params("id"))
		if err != nil {
			return kit.NotFoundAs(err, res.Messages.NotFound)
		}
		return kit.OK(c, doc)
	}
}

// Create starts from the resource defaults, merges the body and validates
// before anything is written.
func (res *Resource[T]) Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc := res.New()
		if err := kit.Bind(c, doc); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
		defer cancel()
		if err := validation.Apply(ctx, doc); err != nil {
			return err
		}
		if err := res.Store.Create(ctx, doc); err != nil {
			return err
		}
		res.written(ctx, mqx.Created, doc)
		return kit.Created(c, res.Messages.Created, doc)
	}
}

// Update merges the body onto the stored document and re-runs the creation
// constraints on the result.
func (res *Resource[T]) Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
		defer cancel()
		doc, err := res.Store.Update(ctx, c.Params("id"), func(doc *T) error {
			if err := kit.Bind(c, doc); err != nil {
				return err
			}
			return validation.Apply(ctx, doc)
		})
		if err != nil {
			return kit.NotFoundAs(err, res.Messages.NotFound)
		}
		res.written(ctx, mqx.Updated, doc)
		return kit.Updated(c, res.Messages.Updated, doc)
	}
}

func (res *Resource[T]) Delete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
		defer cancel()
		id := c.Params("id")
		if err := res.Store.Delete(ctx, id); err != nil {
			return kit.NotFoundAs(err, res.Messages.NotFound)
		}
		if res.OnDelete != nil {
			res.OnDelete(ctx, id)
		}
		res.Events.Emit(ctx, mqx.ResourceEvent(res.Name, mqx.Deleted), id, nil)
		return kit.Deleted(c, res.Messages.Deleted)
	}
}

func (res *Resource[T]) written(ctx context.Context, action string, doc *T) {
	if res.OnWrite != nil {
		res.OnWrite(ctx, doc)
	}
	if d, ok := any(doc).(store.Document); ok {
		res.Events.Emit(ctx, mqx.ResourceEvent(res.Name, action), d.Header().ID, doc)
	}
}
