// Package pagination implements page-number pagination for catalog listings.
package pagination

import (
	"net/http"
	"strconv"
)

const DefaultPageSize = 4

// Params is a normalized page request. Page is 1-indexed.
type Params struct {
	Page int
	Size int
}

// Normalize clamps out-of-range values so a zero or negative page lands on
// the first page and a nonsensical size falls back to the default.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Size
}

// FromRequest reads the "page" query parameter. Garbage input becomes page 1.
func FromRequest(r *http.Request, size int) Params {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = 1
	}
	return Params{Page: page, Size: size}.Normalize()
}

// Meta describes the resolved window of a paginated response.
type Meta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewMeta computes page counts for a result set. A total of zero still
// reports one page so clients always have somewhere to stand.
func NewMeta(p Params, total int64) Meta {
	n := p.Normalize()
	pages := int((total + int64(n.Size) - 1) / int64(n.Size))
	if pages < 1 {
		pages = 1
	}
	return Meta{Page: n.Page, Size: n.Size, TotalItems: total, TotalPages: pages}
}
