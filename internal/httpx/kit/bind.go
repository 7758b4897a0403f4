package kit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"portfolio-api/internal/model"
)

// Bind merges the JSON body onto out. Fields absent from the body keep the
// value out already holds, which gives updates their partial semantics.
// An empty body leaves out untouched. The body is read as JSON whatever
// Content-Type the client sent.
func Bind(c *fiber.Ctx, out any) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return nil
	}
	if err := c.App().Config().JSONDecoder(body, out); err != nil {
		return bodyError(err)
	}
	return nil
}

// BindStrict decodes the JSON body into out and rejects fields out does not
// declare.
func BindStrict(c *fiber.Ctx, out any) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return bodyError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return BadRequest("Invalid JSON payload", nil)
	}
	return nil
}

func bodyError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return BadRequest(fmt.Sprintf("Invalid value for field '%s'", typeErr.Field), nil)
	}
	var dateErr *model.DateError
	if errors.As(err, &dateErr) {
		return BadRequest(fmt.Sprintf("Invalid date '%s'", dateErr.Value), nil)
	}
	if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return BadRequest(field+" is not allowed", nil)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return err
	}
	return BadRequest("Invalid JSON payload", nil)
}
