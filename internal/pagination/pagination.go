package pagination

import "math"

// DefaultPerPage is the page size used when the caller does not pick one.
const DefaultPerPage = 15

// PageRequest holds pagination parameters parsed from query strings.
type PageRequest struct {
	Page    int `form:"page" binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1"`
}

// Defaults fills in default values when page or per_page are not provided.
func (p *PageRequest) Defaults() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
}

// Offset returns the index of the first item on the current page.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PageResponse wraps a paginated list of items with metadata.
type PageResponse[T any] struct {
	Success     bool  `json:"success"`
	Data        []T   `json:"data"`
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
}

// NewPageResponse creates a PageResponse from the given page of data and total count.
func NewPageResponse[T any](data []T, page, perPage int, total int64) PageResponse[T] {
	lastPage := int(math.Ceil(float64(total) / float64(perPage)))
	if data == nil {
		data = []T{}
	}
	return PageResponse[T]{
		Success:     true,
		Data:        data,
		Total:       total,
		PerPage:     perPage,
		CurrentPage: page,
		LastPage:    lastPage,
	}
}

// Slice paginates a fully materialized collection in memory. Totals are
// computed from the whole collection; a page past the end is empty.
func Slice[T any](items []T, req PageRequest) PageResponse[T] {
	req.Defaults()

	total := len(items)
	// Compared by division so huge page values cannot overflow.
	start := total
	if req.Page-1 <= total/req.PerPage {
		start = min((req.Page-1)*req.PerPage, total)
	}
	end := start + min(req.PerPage, total-start)

	return NewPageResponse(items[start:end], req.Page, req.PerPage, int64(total))
}
