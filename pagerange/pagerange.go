// Package pagerange parses user-entered page range expressions such as
// "1-3, 5-8, 10" and validates them against a document's page count.
//
// Users count pages from 1. A PageRange stores the 0-based start index and
// the exclusive end index, so "5-8" becomes (4, 8) and "10" becomes (9, 10).
package pagerange

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var whitespace = regexp.MustCompile(`\s`)

// PageRange is a 0-based, end-exclusive span of pages.
type PageRange struct {
	start int
	end   int
}

// New returns the range (start, end) after checking it lies inside a
// document of totalPages pages.
func New(start, end, totalPages int) (PageRange, error) {
	token := fmt.Sprintf("%d-%d", start+1, end)
	if start < 0 || start >= end || end > totalPages {
		return PageRange{}, outOfBounds(token, totalPages)
	}
	return PageRange{start: start, end: end}, nil
}

// Full returns the range covering every page of the document.
func Full(totalPages int) (PageRange, error) {
	return New(0, totalPages, totalPages)
}

// Start returns the 0-based index of the first page.
func (r PageRange) Start() int { return r.start }

// End returns the index one past the last page.
func (r PageRange) End() int { return r.end }

// Len returns the number of pages in the range.
func (r PageRange) Len() int { return r.end - r.start }

// Contains reports whether the 0-based page index idx is in the range.
func (r PageRange) Contains(idx int) bool { return idx >= r.start && idx < r.end }

// Pages returns the 1-based page numbers covered by the range.
func (r PageRange) Pages() []int {
	pages := make([]int, 0, r.Len())
	for p := r.start + 1; p <= r.end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Label renders the range the way a user would type it: "7" for a single
// page, "5-8" otherwise. pdfcpu accepts the same form as a page selector.
func (r PageRange) Label() string {
	if r.start+1 == r.end {
		return strconv.Itoa(r.end)
	}
	return fmt.Sprintf("%d-%d", r.start+1, r.end)
}

func (r PageRange) String() string { return r.Label() }

// Parse turns expression into an ordered list of page ranges. Ranges keep
// the order they were typed in and duplicates are preserved. The first bad
// token aborts the parse with an *InvalidRangeError.
func Parse(expression string, totalPages int) ([]PageRange, error) {
	expression = whitespace.ReplaceAllString(expression, "")

	var ranges []PageRange
	for _, token := range strings.Split(expression, ",") {
		if token == "" {
			continue
		}
		r, err := parseToken(token, totalPages)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}

	if len(ranges) == 0 {
		return nil, &InvalidRangeError{Token: expression, Reason: "no page ranges given"}
	}
	return ranges, nil
}

func parseToken(token string, totalPages int) (PageRange, error) {
	if !strings.Contains(token, "-") {
		p, err := parsePageNumber(token)
		if err != nil {
			return PageRange{}, &InvalidRangeError{Token: token, Reason: "not a page number"}
		}
		if p < 1 || p > totalPages {
			return PageRange{}, outOfBounds(token, totalPages)
		}
		return PageRange{start: p - 1, end: p}, nil
	}

	parts := strings.Split(token, "-")
	if len(parts) != 2 {
		return PageRange{}, &InvalidRangeError{Token: token, Reason: "a range has exactly one '-'"}
	}
	a, err := parsePageNumber(parts[0])
	if err != nil {
		return PageRange{}, &InvalidRangeError{Token: token, Reason: fmt.Sprintf("invalid start page %q", parts[0])}
	}
	b, err := parsePageNumber(parts[1])
	if err != nil {
		return PageRange{}, &InvalidRangeError{Token: token, Reason: fmt.Sprintf("invalid end page %q", parts[1])}
	}
	if a > b {
		return PageRange{}, &InvalidRangeError{Token: token, Reason: fmt.Sprintf("start page %d is after end page %d", a, b)}
	}
	if a < 1 || b > totalPages {
		return PageRange{}, outOfBounds(token, totalPages)
	}
	return PageRange{start: a - 1, end: b}, nil
}

// parsePageNumber accepts plain decimal digits only, so "+3" and "-3" are
// rejected rather than read as signed integers.
func parsePageNumber(s string) (int, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}

// ParseInsertionPoint reads the page after which another document is
// spliced in. It must name an existing page of the target document.
func ParseInsertionPoint(raw string, totalPages int) (int, error) {
	raw = strings.TrimSpace(raw)
	after, err := parsePageNumber(raw)
	if err != nil {
		return 0, &InvalidRangeError{Token: raw, Reason: "insertion point is not a page number"}
	}
	if err := ValidateInsertionPoint(after, totalPages); err != nil {
		return 0, err
	}
	return after, nil
}

// ValidateInsertionPoint checks 1 <= after <= totalPages.
func ValidateInsertionPoint(after, totalPages int) error {
	if after < 1 || after > totalPages {
		return &InvalidRangeError{
			Token:  strconv.Itoa(after),
			Reason: fmt.Sprintf("insertion point must be between 1 and %d", totalPages),
		}
	}
	return nil
}

// Selectors returns the labels of ranges in order.
func Selectors(ranges []PageRange) []string {
	sel := make([]string, len(ranges))
	for i, r := range ranges {
		sel[i] = r.Label()
	}
	return sel
}

// Union returns the sorted, de-duplicated 1-based page numbers covered by
// ranges.
func Union(ranges []PageRange) []int {
	seen := make(map[int]bool)
	var pages []int
	for _, r := range ranges {
		for _, p := range r.Pages() {
			if !seen[p] {
				seen[p] = true
				pages = append(pages, p)
			}
		}
	}
	sort.Ints(pages)
	return pages
}

func outOfBounds(token string, totalPages int) *InvalidRangeError {
	if totalPages < 1 {
		return &InvalidRangeError{Token: token, Reason: "document has no pages"}
	}
	return &InvalidRangeError{
		Token:  token,
		Reason: fmt.Sprintf("pages must be between 1 and %d", totalPages),
	}
}
