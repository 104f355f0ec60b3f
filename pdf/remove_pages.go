package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"pdf_toolkit/pagerange"
)

// RemovePages deletes every page covered by ranges. At least one page must
// remain.
func RemovePages(doc *Document, ranges []pagerange.PageRange) ([]byte, error) {
	pages := pagerange.Union(ranges)
	if len(pages) == 0 {
		return nil, &pagerange.InvalidRangeError{Reason: "no pages specified"}
	}
	if len(pages) >= doc.PageCount() {
		return nil, &pagerange.InvalidRangeError{
			Token:  pagerange.Selectors(ranges)[0],
			Reason: "cannot remove every page of the document",
		}
	}

	var buf bytes.Buffer
	if err := api.RemovePages(bytes.NewReader(doc.Bytes()), &buf, pageSelection(pages), newConfiguration()); err != nil {
		return nil, fmt.Errorf("pdfcpu remove failed: %w", err)
	}
	return buf.Bytes(), nil
}
