package shared

// ListQuery carries pagination, search and category filter parameters for
// list operations. Category is an exact-match filter whose meaning is
// resource-specific (invoice status, user active flag).
type ListQuery struct {
	Skip     int
	Limit    int
	Search   string
	Category string
}

// HasCategory reports whether a category filter is present
func (q ListQuery) HasCategory() bool {
	return q.Category != ""
}

// PageMeta is the count metadata returned alongside a list page.
// Filters holds per-category counts computed under the owner scope only,
// so the counters stay stable while search or the active category changes.
type PageMeta struct {
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
	Filters map[string]int64 `json:"filters"`
}

// NewPageMeta builds page metadata from a query and its filtered total.
// The page number is derived from skip/limit; a non-positive limit maps
// to page 1.
func NewPageMeta(q ListQuery, total int64, filters map[string]int64) PageMeta {
	page := 1
	if q.Limit > 0 {
		page = q.Skip/q.Limit + 1
	}
	return PageMeta{
		Total:   total,
		Page:    page,
		Limit:   q.Limit,
		Filters: filters,
	}
}

// Page is a paginated list result
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

// NewPage creates a paginated result
func NewPage[T any](data []T, meta PageMeta) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{Data: data, Meta: meta}
}
