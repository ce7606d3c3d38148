package remote

import (
	"context"
	"errors"
	"testing"

	"coachdesk/internal/domain/row"
)

// pagedSource returns canned pages and records each requested range.
type pagedSource struct {
	pages   [][]row.Row
	err     error
	queries []Query
}

func (s *pagedSource) Select(_ context.Context, q Query) ([]row.Row, error) {
	s.queries = append(s.queries, q)
	if s.err != nil {
		return nil, s.err
	}
	page := q.Offset / PageSize
	if page >= len(s.pages) {
		return nil, nil
	}
	return s.pages[page], nil
}

func makeRows(n int) []row.Row {
	rows := make([]row.Row, n)
	for i := range rows {
		rows[i] = row.Row{"id": i}
	}
	return rows
}

// TestFetchAllRows_StopsOnShortPage verifies 1000+1000+400 rows are
// fetched in exactly three page requests.
func TestFetchAllRows_StopsOnShortPage(t *testing.T) {
	src := &pagedSource{pages: [][]row.Row{makeRows(1000), makeRows(1000), makeRows(400)}}

	rows, err := FetchAllRows(context.Background(), src, Query{Table: "sessions"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2400 {
		t.Errorf("rows=%d want 2400", len(rows))
	}
	if len(src.queries) != 3 {
		t.Errorf("page requests=%d want 3", len(src.queries))
	}
	for i, q := range src.queries {
		if q.Offset != i*PageSize || q.Limit != PageSize {
			t.Errorf("query %d offset/limit=%d/%d want %d/%d", i, q.Offset, q.Limit, i*PageSize, PageSize)
		}
	}
}

// TestFetchAllRows_ShortPageCarriesFilter verifies the page count is
// independent of an applied filter.
func TestFetchAllRows_ShortPageCarriesFilter(t *testing.T) {
	src := &pagedSource{pages: [][]row.Row{makeRows(1000), makeRows(1000), makeRows(400)}}

	q := Query{Table: "sessions", NotNull: []string{"employee_name"}}
	rows, err := FetchAllRows(context.Background(), src, q, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2400 || len(src.queries) != 3 {
		t.Errorf("rows=%d requests=%d want 2400/3", len(rows), len(src.queries))
	}
	for _, got := range src.queries {
		if len(got.NotNull) != 1 || got.NotNull[0] != "employee_name" {
			t.Errorf("filter not carried: %+v", got.NotNull)
		}
	}
}

// TestFetchAllRows_EmptyFirstPage returns an empty set, not an error.
func TestFetchAllRows_EmptyFirstPage(t *testing.T) {
	src := &pagedSource{pages: nil}
	rows, err := FetchAllRows(context.Background(), src, Query{Table: "employees"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows=%d want 0", len(rows))
	}
	if len(src.queries) != 1 {
		t.Errorf("page requests=%d want 1", len(src.queries))
	}
}

// TestFetchAllRows_PageCap terminates after MaxPages full pages.
func TestFetchAllRows_PageCap(t *testing.T) {
	pages := make([][]row.Row, MaxPages+10)
	for i := range pages {
		pages[i] = makeRows(PageSize)
	}
	src := &pagedSource{pages: pages}

	rows, err := FetchAllRows(context.Background(), src, Query{Table: "sessions"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(src.queries) != MaxPages {
		t.Errorf("page requests=%d want %d", len(src.queries), MaxPages)
	}
	if len(rows) != MaxPages*PageSize {
		t.Errorf("rows=%d want %d", len(rows), MaxPages*PageSize)
	}
}

// TestFetchAllRows_PropagatesStructuredError keeps the *QueryError intact
// so callers can branch on the code.
func TestFetchAllRows_PropagatesStructuredError(t *testing.T) {
	want := &QueryError{Code: CodeUndefinedTable, Message: `relation "public.employees" does not exist`}
	src := &pagedSource{err: want}

	_, err := FetchAllRows(context.Background(), src, Query{Table: "employees"}, true)
	if err == nil {
		t.Fatal("expected error")
	}
	var qe *QueryError
	if !errors.As(err, &qe) || qe.Code != CodeUndefinedTable {
		t.Fatalf("error=%v, structured code lost", err)
	}
	if !IsMissingRelation(err) {
		t.Error("IsMissingRelation=false want true")
	}
}
