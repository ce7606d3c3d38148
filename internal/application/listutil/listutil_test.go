package listutil

import (
	"net/url"
	"reflect"
	"testing"
)

var sortable = []string{"name", "total", "completed", "last"}

func TestParse_Defaults(t *testing.T) {
	lq := Parse(url.Values{}, sortable)
	want := ListQuery{Dir: "asc", Page: 1, PerPage: DefaultPerPage}
	if lq != want {
		t.Errorf("got %+v want %+v", lq, want)
	}
}

func TestParse_RejectsUnknownSortColumn(t *testing.T) {
	lq := Parse(url.Values{"sort": {"password"}, "dir": {"desc"}}, sortable)
	if lq.Sort != "" {
		t.Errorf("sort=%q want empty", lq.Sort)
	}
	if lq.Dir != "desc" {
		t.Errorf("dir=%q", lq.Dir)
	}
}

func TestParse_InvalidPerPageFallsBack(t *testing.T) {
	lq := Parse(url.Values{"per_page": {"7"}, "page": {"-3"}}, sortable)
	if lq.PerPage != DefaultPerPage || lq.Page != 1 {
		t.Errorf("got %+v", lq)
	}
}

func TestParse_CarriesFilters(t *testing.T) {
	lq := Parse(url.Values{"q": {"ali"}, "program": {"Eng"}}, sortable)
	if lq.Search != "ali" || lq.Program != "Eng" {
		t.Errorf("got %+v", lq)
	}
}

func TestNewPageInfo_ClampsPage(t *testing.T) {
	p := NewPageInfo(99, 25, 30)
	if p.Page != 2 || p.TotalPages != 2 {
		t.Errorf("got %+v", p)
	}
	if p.StartRow() != 26 || p.EndRow() != 30 {
		t.Errorf("rows %d-%d", p.StartRow(), p.EndRow())
	}
}

func TestNewPageInfo_EmptyList(t *testing.T) {
	p := NewPageInfo(1, 25, 0)
	if p.TotalPages != 1 || p.StartRow() != 0 || p.ShowPagination() {
		t.Errorf("got %+v", p)
	}
}

func TestPageNumbers_CenteredWindow(t *testing.T) {
	p := NewPageInfo(6, 10, 100)
	if got := p.PageNumbers(); !reflect.DeepEqual(got, []int{4, 5, 6, 7, 8}) {
		t.Errorf("got %v", got)
	}
}

func TestSlice_Pagination(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	p := PageInfo{Page: 2, PerPage: 2, Total: 5}
	if got := Slice(items, p); !reflect.DeepEqual(got, []int{3, 4}) {
		t.Errorf("got %v", got)
	}
	p = PageInfo{Page: 9, PerPage: 2, Total: 5}
	if got := Slice(items, p); got != nil {
		t.Errorf("out of range got %v", got)
	}
}
