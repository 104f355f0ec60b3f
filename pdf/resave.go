package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Resave optimizes and rewrites a PDF with pdfcpu. This is the library
// compressor: it drops redundant objects and writes compressed object and
// xref streams.
func Resave(doc *Document) ([]byte, error) {
	conf := newConfiguration()
	conf.WriteObjectStream = true
	conf.WriteXRefStream = true

	var buf bytes.Buffer
	if err := api.Optimize(bytes.NewReader(doc.Bytes()), &buf, conf); err != nil {
		return nil, fmt.Errorf("pdfcpu optimize failed: %w", err)
	}
	return buf.Bytes(), nil
}
