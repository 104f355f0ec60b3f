package pdf

import (
	"fmt"

	"pdf_toolkit/pagerange"
)

// File is a named output document.
type File struct {
	Name string
	Data []byte
}

// SplitRanges extracts each range into its own file, in the order given.
// Files are named <base>_pages_<label>.pdf; a repeated range gets a numeric
// suffix so every name in the set is distinct.
func SplitRanges(doc *Document, ranges []pagerange.PageRange) ([]File, error) {
	if len(ranges) == 0 {
		return nil, &pagerange.InvalidRangeError{Reason: "no page ranges given"}
	}

	seen := make(map[string]int)
	files := make([]File, 0, len(ranges))
	for _, r := range ranges {
		data, err := doc.Extract(r)
		if err != nil {
			return nil, err
		}
		name := uniqueName(seen, fmt.Sprintf("%s_pages_%s.pdf", doc.BaseName(), r.Label()))
		files = append(files, File{Name: name, Data: data})
	}
	return files, nil
}

// SplitPages writes every page into its own file named <base>_page_<n>.pdf.
func SplitPages(doc *Document) ([]File, error) {
	files := make([]File, 0, doc.PageCount())
	for i := 0; i < doc.PageCount(); i++ {
		r, err := pagerange.New(i, i+1, doc.PageCount())
		if err != nil {
			return nil, err
		}
		data, err := doc.Extract(r)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Name: fmt.Sprintf("%s_page_%d.pdf", doc.BaseName(), i+1), Data: data})
	}
	return files, nil
}
