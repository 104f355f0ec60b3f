package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"pdf_toolkit/pagerange"
)

func init() {
	// Keep pdfcpu from writing a config directory into the user's home.
	api.DisableConfigDir()
}

// newConfiguration returns the pdfcpu configuration used for every operation.
func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Document is a loaded PDF. It keeps the original bytes for operations that
// stream the file through pdfcpu and the parsed context for page extraction.
type Document struct {
	name string
	data []byte
	ctx  *model.Context
}

// Open parses data as a PDF. Anything pdfcpu cannot read is reported as an
// *UnsupportedFileError.
func Open(name string, data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, &UnsupportedFileError{Name: name, Reason: "file is empty"}
	}

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), newConfiguration())
	if err != nil {
		if errors.Is(err, pdfcpu.ErrWrongPassword) {
			return nil, &UnsupportedFileError{Name: name, Reason: "file is password protected", Err: err}
		}
		return nil, &UnsupportedFileError{Name: name, Reason: "not a readable PDF", Err: err}
	}
	if ctx.PageCount < 1 {
		return nil, &UnsupportedFileError{Name: name, Reason: "document has no pages"}
	}

	return &Document{name: name, data: data, ctx: ctx}, nil
}

// Name returns the file name the document was uploaded with.
func (d *Document) Name() string { return d.name }

// BaseName returns the file name without directory and ".pdf" extension,
// or "document" if nothing is left.
func (d *Document) BaseName() string {
	base := filepath.Base(d.name)
	if strings.HasSuffix(strings.ToLower(base), ".pdf") {
		base = base[:len(base)-4]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "document"
	}
	return base
}

// PageCount returns the total number of pages.
func (d *Document) PageCount() int { return d.ctx.PageCount }

// Size returns the size of the original file in bytes.
func (d *Document) Size() int { return len(d.data) }

// Bytes returns the original file contents.
func (d *Document) Bytes() []byte { return d.data }

// ParseRanges validates a page range expression against this document.
func (d *Document) ParseRanges(expression string) ([]pagerange.PageRange, error) {
	return pagerange.Parse(expression, d.PageCount())
}

// Extract writes the pages of r into a new PDF.
func (d *Document) Extract(r pagerange.PageRange) ([]byte, error) {
	if r.End() > d.PageCount() {
		return nil, &pagerange.InvalidRangeError{
			Token:  r.Label(),
			Reason: fmt.Sprintf("pages must be between 1 and %d", d.PageCount()),
		}
	}

	out, err := pdfcpu.ExtractPages(d.ctx, r.Pages(), false)
	if err != nil {
		return nil, fmt.Errorf("extract pages %s: %w", r.Label(), err)
	}

	var buf bytes.Buffer
	if err := api.WriteContext(out, &buf); err != nil {
		return nil, fmt.Errorf("write pages %s: %w", r.Label(), err)
	}
	return buf.Bytes(), nil
}
