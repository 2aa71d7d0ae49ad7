package persistence

import (
	"strings"

	"github.com/invoiceapp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ListSpec describes how a resource participates in list resolution:
// which text columns the search term is matched against, and which column
// the category filter compares exactly. CategoryValue, when set, converts
// the category string to the column's native type before it is bound; a
// boolean column must not be compared against the string "true".
type ListSpec struct {
	SearchColumns  []string
	CategoryColumn string
	CategoryValue  func(category string) any
}

// QueryFactory returns a fresh scoped Model query. List resolution runs
// several independent queries (page, filtered count, unfiltered count), so
// it takes a factory rather than a single query that would accumulate
// clauses.
type QueryFactory func() *gorm.DB

// ListResult holds one resolved page and its counts.
type ListResult[M any] struct {
	Items           []M
	FilteredTotal   int64
	UnfilteredTotal int64
}

// ResolveList runs the shared list pipeline: scope comes baked into the
// factory, then search and category narrow the set, then the page is cut.
// FilteredTotal counts the narrowed set; UnfilteredTotal counts the scope
// only, so filter chips stay stable while the active filter changes.
//
// A non-positive limit yields an empty page with valid counts. A skip past
// the end yields an empty page. Rows are ordered by primary id ascending.
func ResolveList[M any](base QueryFactory, spec ListSpec, q shared.ListQuery) (ListResult[M], error) {
	res := ListResult[M]{Items: []M{}}

	if err := base().Count(&res.UnfilteredTotal).Error; err != nil {
		return res, err
	}

	if err := applyListFilters(base(), spec, q).Count(&res.FilteredTotal).Error; err != nil {
		return res, err
	}

	if q.Limit <= 0 {
		return res, nil
	}

	skip := q.Skip
	if skip < 0 {
		skip = 0
	}

	page := applyListFilters(base(), spec, q).
		Order("id ASC").
		Offset(skip).
		Limit(q.Limit)
	if err := page.Find(&res.Items).Error; err != nil {
		return res, err
	}
	return res, nil
}

// applyListFilters narrows a query by search term and category value
func applyListFilters(query *gorm.DB, spec ListSpec, q shared.ListQuery) *gorm.DB {
	if q.Search != "" && len(spec.SearchColumns) > 0 {
		pattern := "%" + q.Search + "%"
		var sb strings.Builder
		args := make([]any, 0, len(spec.SearchColumns))
		for i, col := range spec.SearchColumns {
			if i > 0 {
				sb.WriteString(" OR ")
			}
			sb.WriteString(col)
			sb.WriteString(" ILIKE ?")
			args = append(args, pattern)
		}
		query = query.Where(sb.String(), args...)
	}

	if q.HasCategory() && spec.CategoryColumn != "" {
		value := any(q.Category)
		if spec.CategoryValue != nil {
			value = spec.CategoryValue(q.Category)
		}
		query = query.Where(spec.CategoryColumn+" = ?", value)
	}

	return query
}

type categoryCountRow struct {
	Value string
	Count int64
}

// CategoryCounts counts scope-only rows per category value. Recognized
// values missing from the data still appear with a zero count.
func CategoryCounts(base QueryFactory, column string, recognized []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(recognized))
	for _, v := range recognized {
		counts[v] = 0
	}

	var rows []categoryCountRow
	if err := base().
		Select(column + " AS value, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.Value] = row.Count
	}
	return counts, nil
}
