package kit

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

// Pagination is the page block of offset-paginated lists.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// RequestID extracts request id from headers
func RequestID(c *fiber.Ctx) string {
	rid := c.GetRespHeader(fiber.HeaderXRequestID)
	return lo.Ternary(rid != "", rid, c.Get(fiber.HeaderXRequestID))
}

// OK sends {success, data}.
func OK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": data})
}

// List sends {success, count, data}.
func List[T any](c *fiber.Ctx, items []T) error {
	if items == nil {
		items = []T{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "count": len(items), "data": items})
}

// Paged sends {success, data, pagination}.
func Paged[T any](c *fiber.Ctx, items []T, p Pagination) error {
	if items == nil {
		items = []T{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": items, "pagination": p})
}

// Created sends 201 {success, message, data}.
func Created(c *fiber.Ctx, msg string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": msg, "data": data})
}

// Updated sends {success, message, data}.
func Updated(c *fiber.Ctx, msg string, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": msg, "data": data})
}

// Deleted sends {success, message}.
func Deleted(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": msg})
}
