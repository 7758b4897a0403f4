package kit

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"portfolio-api/internal/logx"
	"portfolio-api/internal/store"
	"portfolio-api/internal/validation"
)

var kitLogger = logx.GetScope("httpx")

// APIError is a structured application error with code and message.
type APIError struct {
	HTTPStatus int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

func (e *APIError) Error() string { return e.Message }

func NewAPIError(httpStatus int, code, msg string, details any) *APIError {
	return &APIError{HTTPStatus: httpStatus, Code: code, Message: msg, Details: details}
}

// Common helpers
func BadRequest(msg string, details any) error {
	return NewAPIError(http.StatusBadRequest, "E_INVALID_PARAM", msg, details)
}
func NotFound(msg string) error { return NewAPIError(http.StatusNotFound, "E_NOT_FOUND", msg, nil) }
func TooManyRequests(msg string) error {
	return NewAPIError(http.StatusTooManyRequests, "E_RATE_LIMITED", msg, nil)
}
func ServiceUnavailable(msg string) error {
	return NewAPIError(http.StatusServiceUnavailable, "E_UNAVAILABLE", msg, nil)
}
func InternalError(msg string, details any) error {
	return NewAPIError(http.StatusInternalServerError, "E_INTERNAL", msg, details)
}

// NotFoundAs rewrites store.ErrNotFound into a 404 carrying msg and passes
// every other error through.
func NotFoundAs(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return NotFound(msg)
	}
	return err
}

// ErrorHandler returns a Fiber error handler that emits unified error responses.
// With hideInternal set, unexpected errors are answered with a generic message.
func ErrorHandler(hideInternal bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		ae := classify(err)
		if ae.HTTPStatus >= http.StatusInternalServerError {
			kitLogger.Sugar().Errorw("request failed",
				"method", c.Method(), "path", c.Path(), "request_id", RequestID(c), "error", err)
			if hideInternal {
				ae.Message = "Internal Server Error"
				ae.Details = nil
			}
		}
		body := fiber.Map{
			"success":    false,
			"message":    ae.Message,
			"code":       ae.Code,
			"request_id": RequestID(c),
		}
		if ae.Details != nil {
			body["details"] = ae.Details
		}
		return c.Status(ae.HTTPStatus).JSON(body)
	}
}

func classify(err error) *APIError {
	var ae *APIError
	if errors.As(err, &ae) {
		out := *ae
		return &out
	}
	if ve, ok := validation.AsError(err); ok {
		return NewAPIError(http.StatusBadRequest, "E_VALIDATION", ve.Message, fiber.Map{"field": ve.Field})
	}
	var dk *store.DuplicateKeyError
	if errors.As(err, &dk) {
		return NewAPIError(http.StatusBadRequest, "E_DUPLICATE", fmt.Sprintf("Duplicate value for field '%s'", dk.Field), nil)
	}
	if errors.Is(err, store.ErrNotFound) {
		return NotFound("Resource not found").(*APIError)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return NewAPIError(fe.Code, httpStatusToCode(fe.Code), fe.Message, nil)
	}
	return InternalError(err.Error(), nil).(*APIError)
}

func httpStatusToCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "E_INVALID_PARAM"
	case http.StatusNotFound:
		return "E_NOT_FOUND"
	case http.StatusTooManyRequests:
		return "E_RATE_LIMITED"
	case http.StatusRequestEntityTooLarge:
		return "E_TOO_LARGE"
	default:
		if status >= 500 {
			return "E_INTERNAL"
		}
		return "E_UNKNOWN"
	}
}
