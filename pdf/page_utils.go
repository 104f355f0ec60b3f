package pdf

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// pageSelection converts 1-based page numbers into pdfcpu's selected pages
// form.
func pageSelection(pages []int) []string {
	sel := make([]string, len(pages))
	for i, p := range pages {
		sel[i] = strconv.Itoa(p)
	}
	return sel
}

// mergeRaw concatenates PDFs in order.
func mergeRaw(parts [][]byte) ([]byte, error) {
	rsc := make([]io.ReadSeeker, len(parts))
	for i, p := range parts {
		rsc[i] = bytes.NewReader(p)
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(rsc, &buf, false, newConfiguration()); err != nil {
		return nil, fmt.Errorf("pdfcpu merge failed: %w", err)
	}
	return buf.Bytes(), nil
}

// uniqueName returns name, or name with a numeric suffix before ".pdf" if
// it was already handed out.
func uniqueName(seen map[string]int, name string) string {
	seen[name]++
	if n := seen[name]; n > 1 {
		ext := ".pdf"
		return fmt.Sprintf("%s_%d%s", name[:len(name)-len(ext)], n, ext)
	}
	return name
}
