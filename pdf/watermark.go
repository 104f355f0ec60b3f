package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"pdf_toolkit/pagerange"
)

// Watermark defaults.
const (
	DefaultWatermarkOpacity  = 0.3
	DefaultWatermarkFontSize = 48
	DefaultWatermarkRotation = 45
	DefaultWatermarkColor    = "#808080"
)

// WatermarkOptions configures Watermark. A zero Opacity or FontSize picks
// the default; Rotation is used as given.
type WatermarkOptions struct {
	Text string
	// Pages is a page range expression; empty means every page.
	Pages    string
	Opacity  float64
	FontSize int
	Rotation int
	// Stamp draws the text on top of the page content instead of behind it.
	Stamp bool
}

func (o WatermarkOptions) withDefaults() WatermarkOptions {
	if o.Opacity == 0 {
		o.Opacity = DefaultWatermarkOpacity
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultWatermarkFontSize
	}
	return o
}

func (o WatermarkOptions) validate() error {
	if strings.TrimSpace(o.Text) == "" {
		return invalidOption("watermark text is empty")
	}
	if o.Opacity <= 0 || o.Opacity > 1 {
		return invalidOption("opacity must be in (0, 1], got %g", o.Opacity)
	}
	if o.FontSize < 1 {
		return invalidOption("font size must be positive, got %d", o.FontSize)
	}
	if o.Rotation < -180 || o.Rotation > 180 {
		return invalidOption("rotation must be between -180 and 180, got %d", o.Rotation)
	}
	return nil
}

// description renders the options in pdfcpu's watermark description syntax.
func (o WatermarkOptions) description() string {
	return fmt.Sprintf("font:Helvetica, points:%d, rot:%d, op:%.2f, fillc:%s, scale:1 abs",
		o.FontSize, o.Rotation, o.Opacity, DefaultWatermarkColor)
}

// Watermark draws a text watermark (or stamp) onto the selected pages.
func Watermark(doc *Document, opts WatermarkOptions) ([]byte, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	var selected []string
	if strings.TrimSpace(opts.Pages) != "" {
		ranges, err := doc.ParseRanges(opts.Pages)
		if err != nil {
			return nil, err
		}
		selected = pageSelection(pagerange.Union(ranges))
	}

	wm, err := api.TextWatermark(opts.Text, opts.description(), opts.Stamp, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu watermark setup failed: %w", err)
	}

	var buf bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(doc.Bytes()), &buf, selected, wm, newConfiguration()); err != nil {
		return nil, fmt.Errorf("pdfcpu watermark failed: %w", err)
	}
	return buf.Bytes(), nil
}
