// Package listutil parses and validates list view parameters (search,
// filter, sort, pagination) from request query strings.
package listutil

import (
	"net/url"
	"strconv"
)

// ListQuery carries every parameter a filtered list view accepts.
type ListQuery struct {
	Search  string // free-text name search
	Program string // exact program filter ("" means all)
	Sort    string // column name, validated against an allow-list
	Dir     string // "asc" or "desc"
	Page    int    // 1-indexed
	PerPage int
}

// DefaultPerPage is the default number of rows per page.
const DefaultPerPage = 25

// PerPageOptions are the allowed rows-per-page values.
var PerPageOptions = []int{25, 50, 100}

// Parse extracts list parameters from URL query values.
// PRE: allowedSort lists the sortable column names
// POST: Returns a ListQuery with defaults applied; Sort is "" when the
// requested column is not in the allow-list
func Parse(q url.Values, allowedSort []string) ListQuery {
	lq := ListQuery{
		Search:  q.Get("q"),
		Program: q.Get("program"),
		Sort:    q.Get("sort"),
		Dir:     q.Get("dir"),
	}

	if !contains(allowedSort, lq.Sort) {
		lq.Sort = ""
	}
	if lq.Dir != "asc" && lq.Dir != "desc" {
		lq.Dir = "asc"
	}

	lq.Page, _ = strconv.Atoi(q.Get("page"))
	if lq.Page < 1 {
		lq.Page = 1
	}
	lq.PerPage, _ = strconv.Atoi(q.Get("per_page"))
	if !containsInt(PerPageOptions, lq.PerPage) {
		lq.PerPage = DefaultPerPage
	}
	return lq
}

// PageInfo carries pagination metadata for rendering.
type PageInfo struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// NewPageInfo computes pagination metadata.
// PRE: total >= 0
// POST: Page is clamped into [1, TotalPages]; TotalPages >= 1
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return PageInfo{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Offset returns the index of the first row on the current page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// StartRow returns the 1-indexed first row number on the current page.
// POST: Returns 0 if Total is 0
func (p PageInfo) StartRow() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset() + 1
}

// EndRow returns the 1-indexed last row number on the current page.
func (p PageInfo) EndRow() int {
	end := p.Offset() + p.PerPage
	if end > p.Total {
		end = p.Total
	}
	return end
}

// PageNumbers returns at most 5 page numbers centered on the current page.
func (p PageInfo) PageNumbers() []int {
	const maxButtons = 5
	start := p.Page - maxButtons/2
	if start < 1 {
		start = 1
	}
	end := start + maxButtons - 1
	if end > p.TotalPages {
		end = p.TotalPages
		start = end - maxButtons + 1
		if start < 1 {
			start = 1
		}
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// ShowPagination returns true if pagination controls should be displayed.
func (p PageInfo) ShowPagination() bool {
	return p.Total > p.PerPage
}

// Slice returns the sub-slice of items for the current page.
func Slice[T any](items []T, p PageInfo) []T {
	start := p.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + p.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func contains(list []string, s string) bool {
	if s == "" {
		return false
	}
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsInt(list []int, n int) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}
