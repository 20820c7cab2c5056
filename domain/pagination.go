package domain

const (
	DefaultPage     = 1
	DefaultPageSize = 30
	MaxPageSize     = 100
)

// PaginationParams carries page-based pagination input.
// Zero or out-of-range values fall back to the defaults via Normalize.
type PaginationParams struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalize clamps the params into page >= 1 and page_size in [1, MaxPageSize].
func (p PaginationParams) Normalize() PaginationParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func (p PaginationParams) Limit() int {
	return p.PageSize
}

// PaginationResponse is the generic "items + total" envelope returned by
// every paginated listing. Construct it with NewPaginationResponse only.
type PaginationResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

func NewPaginationResponse[T any](items []T, total int64, params PaginationParams) PaginationResponse[T] {
	var totalPages int64
	if params.PageSize > 0 {
		size := int64(params.PageSize)
		totalPages = (total + size - 1) / size
	}
	return PaginationResponse[T]{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
		HasNext:    int64(params.Page) < totalPages,
		HasPrev:    params.Page > 1,
	}
}
