package types

type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListQuery is the common search/filter/sort/pagination request for list
// endpoints. Page is 1-based; an empty SortBy means store-default order.
type ListQuery struct {
	Search    string    `json:"search" form:"search"`
	Status    string    `json:"filter_status" form:"filter_status"`
	SortBy    string    `json:"sort_by" form:"sort_by"`
	SortOrder SortOrder `json:"sort_order" form:"sort_order"`
	Page      int       `json:"page" form:"page"`
	PageSize  int       `json:"page_size" form:"page_size"`
}

// Limit returns the effective page size, defaulted and capped.
func (q *ListQuery) Limit() int {
	if q.PageSize <= 0 {
		return DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return q.PageSize
}

// Offset converts the 1-based page number to a row offset.
func (q *ListQuery) Offset() int {
	page := q.Page
	if page <= 0 {
		page = 1
	}
	return (page - 1) * q.Limit()
}

// Desc reports whether results should be sorted descending. Ascending is
// the default for any value other than "desc".
func (q *ListQuery) Desc() bool {
	return q.SortOrder == SortOrderDesc
}
