package query

import (
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	// MaxLimit bounds worst-case result size regardless of what the
	// client asks for.
	MaxLimit = 100
)

// Page is a normalized page/limit pair. Construct through ParsePage.
type Page struct {
	Page  int
	Limit int
}

// ParsePage normalizes raw page/limit query parameters. Garbage or
// non-positive values are not errors, they fall back to the defaults;
// limit is clamped to [1, MaxLimit].
func ParsePage(rawPage, rawLimit string) Page {
	page := DefaultPage
	if n, err := strconv.Atoi(strings.TrimSpace(rawPage)); err == nil && n > 0 {
		page = n
	}
	limit := DefaultLimit
	if n, err := strconv.Atoi(strings.TrimSpace(rawLimit)); err == nil && n > 0 {
		limit = n
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Page: page, Limit: limit}
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

// Meta is the pagination block of a list response.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// Meta builds the response metadata once the matching total is known.
// Zero matching rows means zero pages.
func (p Page) Meta(total int64) Meta {
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: (total + int64(p.Limit) - 1) / int64(p.Limit),
	}
}
