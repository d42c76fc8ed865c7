// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// CoursePageSize is the number of rows shown per page on the course
// search results page.
const CoursePageSize = 20

// Page describes one page of a numbered, offset-based list.
type Page struct {
	Number   int // current page, 1-based, clamped into range
	NumPages int // total pages, always >= 1
	PerPage  int
	Total    int // total rows across all pages
	Offset   int // index of the first row on this page

	HasPrev    bool
	HasNext    bool
	PrevNumber int
	NextNumber int
}

// ParsePage extracts the "page" query parameter. Non-numeric or
// out-of-range-low values fall back to page 1; clamping against the
// last page happens in Paginate once the total is known.
func ParsePage(r *http.Request) int {
	s := query.Get(r, "page")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Paginate computes the page window for a list of total rows.
// A requested number past the end clamps to the last page; below 1
// clamps to the first. An empty list still yields one (empty) page.
func Paginate(total, perPage, number int) Page {
	if perPage < 1 {
		perPage = 1
	}
	numPages := (total + perPage - 1) / perPage
	if numPages < 1 {
		numPages = 1
	}
	if number > numPages {
		number = numPages
	}
	if number < 1 {
		number = 1
	}

	p := Page{
		Number:   number,
		NumPages: numPages,
		PerPage:  perPage,
		Total:    total,
		Offset:   (number - 1) * perPage,
		HasPrev:  number > 1,
		HasNext:  number < numPages,
	}
	p.PrevNumber = number - 1
	if p.PrevNumber < 1 {
		p.PrevNumber = 1
	}
	p.NextNumber = number + 1
	if p.NextNumber > numPages {
		p.NextNumber = numPages
	}
	return p
}

// Slice returns the rows belonging to the page window.
func Slice[T any](rows []T, p Page) []T {
	if p.Offset >= len(rows) {
		return rows[:0]
	}
	end := p.Offset + p.PerPage
	if end > len(rows) {
		end = len(rows)
	}
	return rows[p.Offset:end]
}
