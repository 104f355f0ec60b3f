package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf_toolkit/internal/testpdf"
)

// fakeRunner implements commandRunner. Run copies output into the file named
// by -sOutputFile when output is set.
type fakeRunner struct {
	lookErr error
	runErr  error
	stdout  []byte
	output  []byte

	calls [][]string
}

func (f *fakeRunner) LookPath(file string) (string, error) {
	if f.lookErr != nil {
		return "", f.lookErr
	}
	return "/usr/bin/" + file, nil
}

func (f *fakeRunner) Run(_ context.Context, _ time.Duration, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.runErr != nil {
		return f.stdout, f.runErr
	}
	for _, a := range args {
		if out, ok := strings.CutPrefix(a, "-sOutputFile="); ok && f.output != nil {
			if err := os.WriteFile(out, f.output, 0o600); err != nil {
				return nil, err
			}
		}
	}
	return f.stdout, nil
}

func newTestCompressor(t *testing.T, caps Capabilities, runner commandRunner) (*Compressor, *test.Hook, string) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	dir := t.TempDir()
	c := NewCompressor(caps, dir, time.Second, logger)
	c.runner = runner
	return c, hook, dir
}

// assertNoStaging checks that no staging directories were left behind.
func assertNoStaging(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDetectCapabilities(t *testing.T) {
	caps := detectCapabilities(context.Background(), &fakeRunner{stdout: []byte("10.02.1\n")}, "")
	assert.True(t, caps.Ghostscript)
	assert.Equal(t, "/usr/bin/gs", caps.GhostscriptPath)
	assert.Equal(t, "10.02.1", caps.GhostscriptVersion)
	assert.Equal(t, []Method{MethodLibrary, MethodGhostscript}, caps.Methods())

	caps = detectCapabilities(context.Background(), &fakeRunner{lookErr: exec.ErrNotFound}, "gs")
	assert.False(t, caps.Ghostscript)
	assert.Equal(t, []Method{MethodLibrary}, caps.Methods())

	caps = detectCapabilities(context.Background(), &fakeRunner{runErr: errors.New("exit status 1")}, "gs")
	assert.False(t, caps.Ghostscript)
}

func TestCompress_Library(t *testing.T) {
	doc := openTestPDF(t, "in.pdf", 3)
	runner := &fakeRunner{}
	c, _, _ := newTestCompressor(t, Capabilities{}, runner)

	res, err := c.Compress(context.Background(), doc, CompressOptions{Method: MethodLibrary})
	require.NoError(t, err)
	assert.Equal(t, MethodLibrary, res.Method)
	assert.Empty(t, res.Warning)
	assert.Equal(t, doc.Size(), res.OriginalSize)
	assert.Equal(t, len(res.Data), res.CompressedSize)
	assert.Equal(t, 3, pageCount(t, res.Data))
	assert.Empty(t, runner.calls)
}

func TestCompress_Ghostscript(t *testing.T) {
	doc := openTestPDF(t, "in.pdf", 3)
	shrunk := testpdf.Build(3)
	runner := &fakeRunner{output: shrunk}
	caps := Capabilities{Ghostscript: true, GhostscriptPath: "/usr/bin/gs"}
	c, _, dir := newTestCompressor(t, caps, runner)

	res, err := c.Compress(context.Background(), doc, CompressOptions{Method: MethodGhostscript, Preset: PresetScreen})
	require.NoError(t, err)
	assert.Equal(t, MethodGhostscript, res.Method)
	assert.Equal(t, PresetScreen, res.Preset)
	assert.Equal(t, shrunk, res.Data)
	assert.Empty(t, res.Warning)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "/usr/bin/gs", runner.calls[0][0])
	assert.Contains(t, runner.calls[0], "-dPDFSETTINGS=/screen")
	assert.Contains(t, runner.calls[0], "-sDEVICE=pdfwrite")
	assertNoStaging(t, dir)
}

func TestCompress_GhostscriptDefaultPreset(t *testing.T) {
	doc := openTestPDF(t, "in.pdf", 1)
	runner := &fakeRunner{output: testpdf.Build(1)}
	c, _, _ := newTestCompressor(t, Capabilities{Ghostscript: true, GhostscriptPath: "gs"}, runner)

	res, err := c.Compress(context.Background(), doc, CompressOptions{Method: MethodGhostscript})
	require.NoError(t, err)
	assert.Equal(t, PresetEbook, res.Preset)
	assert.Contains(t, runner.calls[0], "-dPDFSETTINGS=/ebook")
}

func TestCompress_FallbackWhenUnavailable(t *testing.T) {
	doc := openTestPDF(t, "in.pdf", 2)
	runner := &fakeRunner{}
	c, hook, _ := newTestCompressor(t, Capabilities{}, runner)

	res, err := c.Compress(context.Background(), doc, CompressOptions{Method: MethodGhostscript, Preset: PresetEbook})
	require.NoError(t, err)
	assert.Equal(t, MethodLibrary, res.Method)
	assert.Equal(t, FallbackWarning, res.Warning)
	assert.Equal(t, 2, pageCount(t, res.Data))
	assert.Empty(t, runner.calls, "capabilities are not re-probed per call")

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestCompress_FallbackWhenBinaryVanished(t *testing.T) {
	doc := openTestPDF(t, "in.pdf", 2)
	runner := &fakeRunner{runErr: fmt.Errorf("command failed: %w", &exec.Error{Name: "gs", Err: exec.ErrNotFound})}
	c, _, dir := newTestCompressor(t, Capabilities{Ghostscript: true, GhostscriptPath: "gs"}, runner)

	res, err := c.Compress(context.Background(), doc, CompressOptions{Method: MethodGhostscript})
	require.NoError(t, err)
	assert.Equal(t, MethodLibrary, res.Method)
	assert.Equal(t, FallbackWarning, res.Warning)
	assertNoStaging(t, dir)
}

func TestCompress_GhostscriptFailure(t *testing.T) {
	doc := openTestPDF(t, "in.pdf", 2)
	runner := &fakeRunner{runErr: errors.New("exit status 1"), stdout: []byte("Error: /syntaxerror")}
	c, _, dir := newTestCompressor(t, Capabilities{Ghostscript: true, GhostscriptPath: "gs"}, runner)

	_, err := c.Compress(context.Background(), doc, CompressOptions{Method: MethodGhostscript})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/syntaxerror")
	assertNoStaging(t, dir)
}

func TestCompress_InvalidOptions(t *testing.T) {
	doc := openTestPDF(t, "in.pdf", 1)
	c, _, _ := newTestCompressor(t, Capabilities{Ghostscript: true}, &fakeRunner{})

	_, err := c.Compress(context.Background(), doc, CompressOptions{Method: "zstd"})
	assert.True(t, errors.Is(err, ErrInvalidOption))

	_, err = c.Compress(context.Background(), doc, CompressOptions{Method: MethodGhostscript, Preset: "printer"})
	assert.True(t, errors.Is(err, ErrInvalidOption))
}

func TestCompressResult_Summary(t *testing.T) {
	res := &CompressResult{Method: MethodLibrary, OriginalSize: 3 * 1024 * 1024, CompressedSize: 1024 * 1024}
	assert.Equal(t, "Compressed using library. Initial file size 3.00 MB reduced to 1.00 MB.", res.Summary())
	assert.InDelta(t, 1.0/3.0, res.Ratio(), 1e-9)
	assert.Zero(t, (&CompressResult{}).Ratio())
}

func TestParseMethodAndPreset(t *testing.T) {
	m, err := ParseMethod("")
	require.NoError(t, err)
	assert.Equal(t, MethodLibrary, m)

	p, err := ParsePreset("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPreset, p)

	p, err = ParsePreset("screen")
	require.NoError(t, err)
	assert.Equal(t, PresetScreen, p)
}
