package pdf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf_toolkit/internal/testpdf"
	"pdf_toolkit/pagerange"
)

// openTestPDF returns a Document with the given number of pages.
func openTestPDF(t *testing.T, name string, pages int) *Document {
	t.Helper()
	doc, err := Open(name, testpdf.Build(pages))
	require.NoError(t, err)
	require.Equal(t, pages, doc.PageCount())
	return doc
}

// pageCount opens data and returns its page count.
func pageCount(t *testing.T, data []byte) int {
	t.Helper()
	doc, err := Open("out.pdf", data)
	require.NoError(t, err)
	return doc.PageCount()
}

func TestOpen(t *testing.T) {
	doc := openTestPDF(t, "report.pdf", 4)
	assert.Equal(t, "report.pdf", doc.Name())
	assert.Equal(t, "report", doc.BaseName())
	assert.Equal(t, len(testpdf.Build(4)), doc.Size())
}

func TestOpen_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "plain text", data: []byte("hello, this is not a pdf")},
		{name: "truncated pdf", data: testpdf.Build(2)[:40]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Open("upload.pdf", tt.data)
			assert.Nil(t, doc)

			var unsupported *UnsupportedFileError
			require.True(t, errors.As(err, &unsupported), "got %v", err)
			assert.Equal(t, "upload.pdf", unsupported.Name)
		})
	}
}

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		"scan.PDF":       "scan",
		"notes":          "notes",
		"dir/annual.pdf": "annual",
		".pdf":           "document",
		"archive.v2.pdf": "archive.v2",
	}
	for name, want := range tests {
		d := &Document{name: name}
		assert.Equal(t, want, d.BaseName(), name)
	}
}

func TestExtract(t *testing.T) {
	doc := openTestPDF(t, "in.pdf", 6)

	ranges, err := doc.ParseRanges("2-4, 6")
	require.NoError(t, err)

	out, err := doc.Extract(ranges[0])
	require.NoError(t, err)
	assert.Equal(t, 3, pageCount(t, out))

	out, err = doc.Extract(ranges[1])
	require.NoError(t, err)
	assert.Equal(t, 1, pageCount(t, out))
}

func TestExtract_FullRangeRoundTrip(t *testing.T) {
	for _, n := range []int{1, 3, 10} {
		doc := openTestPDF(t, "in.pdf", n)
		full, err := pagerange.Full(doc.PageCount())
		require.NoError(t, err)

		out, err := doc.Extract(full)
		require.NoError(t, err)
		assert.Equal(t, n, pageCount(t, out))
	}
}

func TestExtract_OutOfBounds(t *testing.T) {
	small := openTestPDF(t, "small.pdf", 2)
	big, err := pagerange.New(0, 5, 5)
	require.NoError(t, err)

	_, err = small.Extract(big)
	var rangeErr *pagerange.InvalidRangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func TestParseRanges_UsesDocumentPageCount(t *testing.T) {
	doc := openTestPDF(t, "in.pdf", 3)
	_, err := doc.ParseRanges("4")
	var rangeErr *pagerange.InvalidRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "4", rangeErr.Token)
}
