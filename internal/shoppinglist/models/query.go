package models

import (
	"math"

	"shoplist/pkg/platform/validation"
)

// ListQuery selects one page of a user's lists.
type ListQuery struct {
	Archived bool
	Search   string
	Page     int
	PageSize int
}

// Offset is the number of lists skipped before the page.
func (q ListQuery) Offset() int {
	if q.Page < 1 || q.PageSize < 1 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.PageSize {
		return math.MaxInt
	}
	return (q.Page - 1) * q.PageSize
}

// WithDefaults fills unset paging fields.
func (q ListQuery) WithDefaults() ListQuery {
	if q.Page < 1 {
		q.Page = validation.DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = validation.DefaultPageSize
	}
	if q.Page > validation.MaxPage {
		q.Page = validation.MaxPage
	}
	if q.PageSize > validation.MaxPageSize {
		q.PageSize = validation.MaxPageSize
	}
	return q
}
