// Package validation normalises inbound documents and checks them against the
// field constraints declared on the model types. Checks are fail-fast: only the
// first violated constraint, in field declaration order, is reported.
package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"

	"portfolio-api/internal/model"
)

// Error describes the first constraint a document violates.
type Error struct {
	Field   string
	Rule    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// AsError extracts a validation error from err.
func AsError(err error) (*Error, bool) {
	var ve *Error
	ok := errors.As(err, &ve)
	return ve, ok
}

type defaultsFiller interface {
	FillDefaults()
}

// Validator bundles the normaliser and the constraint checker.
type Validator struct {
	validate *validator.Validate
	conform  *mold.Transformer
}

var std = New()

// New builds a Validator reporting fields by their JSON names.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		d, ok := f.Interface().(model.Date)
		if !ok || d.IsZero() {
			return nil
		}
		return d.Time
	}, model.Date{})
	return &Validator{validate: v, conform: modifiers.New()}
}

// Normalize applies the mod tags (trim, lowercase) and fills defaults a
// client may have nulled out.
func (x *Validator) Normalize(ctx context.Context, doc any) error {
	if err := x.conform.Struct(ctx, doc); err != nil {
		return fmt.Errorf("normalize: %w", err)
	}
	if d, ok := doc.(defaultsFiller); ok {
		d.FillDefaults()
	}
	return nil
}

// Check validates doc and returns *Error for the first violation.
func (x *Validator) Check(doc any) error {
	err := x.validate.Struct(doc)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return &Error{Field: fe.Field(), Rule: fe.Tag(), Message: message(fe)}
}

// Apply normalises doc in place and then checks it.
func (x *Validator) Apply(ctx context.Context, doc any) error {
	if err := x.Normalize(ctx, doc); err != nil {
		return err
	}
	return x.Check(doc)
}

// Apply runs the package-level Validator.
func Apply(ctx context.Context, doc any) error { return std.Apply(ctx, doc) }
