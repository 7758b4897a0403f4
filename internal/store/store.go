// Package store defines the persistence gateway shared by every resource.
//
// A Collection persists one document type. Backends (mongostore, sqlstore)
// implement it on top of a Policy, which declares the fixed sort order, the
// fields a caller may filter on and the fields that must stay unique.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio-api/internal/model"
)

// ErrNotFound is returned when an identity does not resolve to a document.
// Malformed identities are reported the same way.
var ErrNotFound = errors.New("document not found")

// ErrDuplicateKey matches every DuplicateKeyError via errors.Is.
var ErrDuplicateKey = errors.New("duplicate key")

// DuplicateKeyError reports a unique-constraint violation on Field.
type DuplicateKeyError struct {
	Field string
	Err   error
}

func (e *DuplicateKeyError) Error() string {
	if e.Field == "" {
		return "duplicate key"
	}
	return fmt.Sprintf("duplicate value for field %q", e.Field)
}

func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }

func (e *DuplicateKeyError) Unwrap() error { return e.Err }

// IsDuplicate reports whether err is a unique-constraint violation.
func IsDuplicate(err error) bool { return errors.Is(err, ErrDuplicateKey) }

// Document is implemented by every model through the embedded model.Base.
type Document interface {
	Header() *model.Base
}

// Doc constrains T so that *T is a Document.
type Doc[T any] interface {
	*T
	Document
}

// Filter is a set of field equality conditions, keyed by JSON field name.
type Filter map[string]any

// Query selects a window of a collection in policy order.
// A zero Limit means no limit.
type Query struct {
	Filter Filter
	Skip   int
	Limit  int
}

// Collection is the gateway for one document type.
type Collection[T any] interface {
	// Create assigns identity and timestamps, persists doc and updates it in place.
	Create(ctx context.Context, doc *T) error
	// Find returns the documents matching q in the collection's sort order.
	Find(ctx context.Context, q Query) ([]*T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	// Update loads the document, lets apply mutate it and writes it back
	// only when apply succeeds. It returns the stored document.
	Update(ctx context.Context, id string, apply func(*T) error) (*T, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, f Filter) (int64, error)
}

// Now is the timestamp the gateways stamp on writes. It is truncated to the
// millisecond so every backend round-trips it unchanged.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Stamp prepares a new document for insertion.
func Stamp(h *model.Base, id string) {
	now := Now()
	h.ID = id
	h.CreatedAt = now
	h.UpdatedAt = now
}

// Restore puts back the server-owned fields after a client merge overwrote them.
func Restore(h *model.Base, saved model.Base) {
	*h = saved
}
