// Package contact provides the contact form endpoints.
package contact

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"portfolio-api/internal/httpx/kit"
	"portfolio-api/internal/logx"
	"portfolio-api/internal/model"
	"portfolio-api/internal/mqx"
	"portfolio-api/internal/notify"
	"portfolio-api/internal/store"
	"portfolio-api/internal/validation"
)

var contactLogger = logx.GetScope("contact")

const (
	thankYou         = "Thank you for your message! I will get back to you soon."
	defaultPageLimit = 10
	notifyTimeout    = 30 * time.Second
)

// Submitted is the part of a stored submission echoed back to the sender.
type Submitted struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Register mounts /contact on r.
func Register(r fiber.Router, contacts store.Collection[model.Contact], n notify.Notifier, events *mqx.Events) {
	g := r.Group("/contact")
	g.Post("/", SubmitHandler(contacts, n, events))
	g.Get("/", ListHandler(contacts))
}

// SubmitHandler validates and stores a submission, then notifies the owner.
// Notification runs after the write and never changes the response.
func SubmitHandler(contacts store.Collection[model.Contact], n notify.Notifier, events *mqx.Events) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.ContactInput
		if err := kit.BindStrict(c, &in); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		if err := validation.Apply(ctx, &in); err != nil {
			return err
		}
		doc := in.ToContact(c.IP(), c.Get(fiber.HeaderUserAgent))
		if err := contacts.Create(ctx, doc); err != nil {
			return err
		}

		deliver(c.Context(), n, doc)
		events.Emit(ctx, mqx.ContactSubmitted, doc.ID, Submitted{ID: doc.ID, Name: doc.Name, Email: doc.Email})

		return kit.Created(c, thankYou, Submitted{ID: doc.ID, Name: doc.Name, Email: doc.Email})
	}
}

func deliver(parent context.Context, n notify.Notifier, doc *model.Contact) {
	if n == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), notifyTimeout)
	defer cancel()
	if err := n.NotifyContact(ctx, doc); err != nil {
		contactLogger.Warn("contact notification failed", zap.String("contact_id", doc.ID), zap.Error(err))
	}
}

// ListHandler pages through submissions, newest first.
func ListHandler(contacts store.Collection[model.Contact]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := kit.ParsePage(c, defaultPageLimit)
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		items, err := contacts.Find(ctx, store.Query{Skip: p.Skip(), Limit: p.Limit})
		if err != nil {
			return err
		}
		total, err := contacts.Count(ctx, nil)
		if err != nil {
			return err
		}
		return kit.Paged(c, items, p.Meta(total))
	}
}
