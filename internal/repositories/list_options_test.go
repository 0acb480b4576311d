package repositories

import (
	"reflect"
	"testing"
)

func TestListOptionsNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   ListOptions
		want ListOptions
	}{
		{"defaults", ListOptions{}, ListOptions{Page: 1, PageSize: DefaultPageSize, SortOrder: "asc"}},
		{"negative page", ListOptions{Page: -3, PageSize: 20, SortOrder: "desc"}, ListOptions{Page: 1, PageSize: 20, SortOrder: "desc"}},
		{"oversized page size", ListOptions{Page: 2, PageSize: 5000}, ListOptions{Page: 2, PageSize: MaxPageSize, SortOrder: "asc"}},
		{"bad sort order", ListOptions{Page: 1, PageSize: 10, SortOrder: "DROP TABLE"}, ListOptions{Page: 1, PageSize: 10, SortOrder: "asc"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in
			got.Normalize()
			if got != tc.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestListOptionsOffset(t *testing.T) {
	o := ListOptions{Page: 3, PageSize: 10}
	if got := o.Offset(); got != 20 {
		t.Errorf("Offset() = %d, want 20", got)
	}
}

func TestOrderClause(t *testing.T) {
	sortable := map[string]string{"customer_name": "c.customer_name", "created_at": "c.created_at"}

	o := ListOptions{SortBy: "customer_name", SortOrder: "desc"}
	if got := o.OrderClause(sortable, "c.customer_id"); got != " ORDER BY c.customer_name DESC" {
		t.Errorf("OrderClause = %q", got)
	}

	// Unknown sort keys never reach SQL.
	o = ListOptions{SortBy: "customer_name; DROP TABLE customers", SortOrder: "asc"}
	if got := o.OrderClause(sortable, "c.customer_id"); got != " ORDER BY c.customer_id ASC" {
		t.Errorf("OrderClause with bad key = %q", got)
	}
}

func TestSearchClause(t *testing.T) {
	o := ListOptions{Search: "budi"}
	cond, args, next := o.SearchClause([]string{"c.customer_name", "c.customer_code"}, nil, 1)
	if cond != "(c.customer_name ILIKE $1 OR c.customer_code ILIKE $2)" {
		t.Errorf("cond = %q", cond)
	}
	if !reflect.DeepEqual(args, []interface{}{"%budi%", "%budi%"}) {
		t.Errorf("args = %v", args)
	}
	if next != 3 {
		t.Errorf("next = %d, want 3", next)
	}

	o = ListOptions{Search: "   "}
	cond, args, next = o.SearchClause([]string{"c.customer_name"}, nil, 1)
	if cond != "" || args != nil || next != 1 {
		t.Errorf("blank search should produce no clause, got %q %v %d", cond, args, next)
	}
}
