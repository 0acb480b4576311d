package repositories

import (
	"fmt"
	"strings"
)

// Default and maximum page sizes for list queries.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListOptions carries pagination, search and sorting for list queries.
// SortBy is validated against a per-entity whitelist before it reaches SQL.
type ListOptions struct {
	Page      int
	PageSize  int
	Search    string
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// Normalize clamps pagination and sort direction to safe values.
func (o *ListOptions) Normalize() {
	if o.Page <= 0 {
		o.Page = 1
	}
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.PageSize > MaxPageSize {
		o.PageSize = MaxPageSize
	}
	if o.SortOrder != "asc" && o.SortOrder != "desc" {
		o.SortOrder = "asc"
	}
}

// Offset returns the LIMIT/OFFSET offset for the current page.
func (o ListOptions) Offset() int {
	return (o.Page - 1) * o.PageSize
}

// OrderClause builds an ORDER BY clause. sortable maps the external sort key
// to the qualified column; anything not in the map falls back to defaultCol.
func (o ListOptions) OrderClause(sortable map[string]string, defaultCol string) string {
	col := defaultCol
	if mapped, ok := sortable[o.SortBy]; ok {
		col = mapped
	}
	return fmt.Sprintf(" ORDER BY %s %s", col, strings.ToUpper(o.SortOrder))
}

// SearchClause builds an ILIKE condition over the given columns, appending the
// pattern to args once per column. argStart is the 1-based index of the next
// placeholder. It returns the condition, updated args and next placeholder index.
func (o ListOptions) SearchClause(columns []string, args []interface{}, argStart int) (string, []interface{}, int) {
	if strings.TrimSpace(o.Search) == "" || len(columns) == 0 {
		return "", args, argStart
	}
	pattern := "%" + o.Search + "%"
	conds := make([]string, 0, len(columns))
	for _, col := range columns {
		conds = append(conds, fmt.Sprintf("%s ILIKE $%d", col, argStart))
		args = append(args, pattern)
		argStart++
	}
	return "(" + strings.Join(conds, " OR ") + ")", args, argStart
}
