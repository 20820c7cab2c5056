package response

import "github.com/RealTimeMap/RealTimeMap-backend/domain"

// Pagination is the wire envelope for paginated listings.
type Pagination[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewCommentPageFromDomain maps a domain comment page onto response DTOs,
// keeping the pagination metadata untouched.
func NewCommentPageFromDomain(p domain.PaginationResponse[*domain.Comment]) Pagination[*Comment] {
	items := make([]*Comment, 0, len(p.Items))
	for _, c := range p.Items {
		items = append(items, NewCommentFromDomain(c))
	}
	return Pagination[*Comment]{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
	}
}
