package kit

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

// MaxPageLimit caps ?limit.
const MaxPageLimit = 100

// PageParams are the page/limit query parameters of an offset-paginated list.
type PageParams struct {
	Page  int
	Limit int
}

// ParsePage reads ?page and ?limit. Missing or non-numeric values fall back to
// page 1 and defLimit; out-of-range values are clamped.
func ParsePage(c *fiber.Ctx, defLimit int) PageParams {
	return PageParams{
		Page:  lo.Max([]int{c.QueryInt("page", 1), 1}),
		Limit: lo.Clamp(c.QueryInt("limit", defLimit), 1, MaxPageLimit),
	}
}

// Skip is the number of documents before the page.
func (p PageParams) Skip() int { return (p.Page - 1) * p.Limit }

// Meta builds the pagination block for total matching documents.
func (p PageParams) Meta(total int64) Pagination {
	limit := int64(p.Limit)
	return Pagination{Page: p.Page, Limit: p.Limit, Total: total, Pages: (total + limit - 1) / limit}
}
