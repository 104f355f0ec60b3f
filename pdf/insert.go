package pdf

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"pdf_toolkit/pagerange"
)

// InsertPlan describes splicing a range of pages from Source into Target
// after page After.
type InsertPlan struct {
	Target *Document
	Source *Document
	Range  pagerange.PageRange
	After  int
}

// PlanInsert validates the insertion point and source range.
func PlanInsert(target, source *Document, r pagerange.PageRange, after int) (*InsertPlan, error) {
	if err := pagerange.ValidateInsertionPoint(after, target.PageCount()); err != nil {
		return nil, err
	}
	if r.End() > source.PageCount() {
		return nil, &pagerange.InvalidRangeError{
			Token:  r.Label(),
			Reason: fmt.Sprintf("pages must be between 1 and %d", source.PageCount()),
		}
	}
	return &InsertPlan{Target: target, Source: source, Range: r, After: after}, nil
}

// TotalPages returns the page count of the resulting document.
func (p *InsertPlan) TotalPages() int {
	return p.Target.PageCount() + p.Range.Len()
}

// Segment is one contiguous run of pages in the final document.
type Segment struct {
	From  string `json:"from"`
	First int    `json:"first"`
	Last  int    `json:"last"`
}

// Segments lists the final page order. The trailing target segment is
// omitted when inserting after the last page.
func (p *InsertPlan) Segments() []Segment {
	segs := []Segment{
		{From: "main", First: 1, Last: p.After},
		{From: "insert", First: p.Range.Start() + 1, Last: p.Range.End()},
	}
	if p.After < p.Target.PageCount() {
		segs = append(segs, Segment{From: "main", First: p.After + 1, Last: p.Target.PageCount()})
	}
	return segs
}

// Describe renders the final page order as human-readable lines.
func (p *InsertPlan) Describe() string {
	title := cases.Title(language.English)
	var b strings.Builder
	b.WriteString("Final page order:\n")
	for _, s := range p.Segments() {
		fmt.Fprintf(&b, "- Pages %d to %d from %s PDF\n", s.First, s.Last, title.String(s.From))
	}
	fmt.Fprintf(&b, "Total pages: %d", p.TotalPages())
	return b.String()
}

// Insert builds the document described by plan.
func Insert(plan *InsertPlan) ([]byte, error) {
	var parts [][]byte
	for _, s := range plan.Segments() {
		doc := plan.Target
		if s.From == "insert" {
			doc = plan.Source
		}
		r, err := pagerange.New(s.First-1, s.Last, doc.PageCount())
		if err != nil {
			return nil, err
		}
		part, err := doc.Extract(r)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return mergeRaw(parts)
}
