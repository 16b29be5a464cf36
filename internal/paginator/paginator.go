// Package paginator converts the page and limit URL parameters into an offset and limit for the
// row store and derives the page metadata of a listing.
package paginator

import (
	"math"
	"strconv"

	"gitlab.com/dirk.krummacker/contactbook-service/pkg/model"
)

const (
	// DefaultLimit is used when the limit parameter is missing or invalid.
	DefaultLimit = 5
	// MaxLimit caps the limit parameter.
	MaxLimit = 50
)

// Paginator holds a validated page number and page size. It never rejects its input: missing or
// invalid values fall back to the defaults, and oversized limits and pages are clamped.
type Paginator struct {
	Page  int
	Limit int
}

// New parses the raw page and limit parameters.
func New(page string, limit string) Paginator {
	p := Paginator{Page: 1, Limit: DefaultLimit}
	if n, err := strconv.Atoi(page); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		p.Limit = min(n, MaxLimit)
	}
	// The offset of the last page must still fit into an int.
	p.Page = min(p.Page, math.MaxInt/p.Limit)
	return p
}

// Offset returns the number of rows to skip before the current page.
func (p Paginator) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Metadata describes the current page given the number of matching records.
func (p Paginator) Metadata(totalRecords int) model.Metadata {
	lastPage := (totalRecords + p.Limit - 1) / p.Limit
	if lastPage < 1 {
		lastPage = 1
	}
	return model.Metadata{
		TotalRecords: totalRecords,
		FirstPage:    1,
		LastPage:     lastPage,
		Page:         p.Page,
		Limit:        p.Limit,
	}
}
