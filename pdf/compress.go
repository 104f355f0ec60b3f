package pdf

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
)

// FallbackWarning is shown when Ghostscript was requested but cannot run.
const FallbackWarning = "Ghostscript is not installed. Falling back to library compression."

// Capabilities records which optional external tools were found at startup.
type Capabilities struct {
	Ghostscript        bool   `json:"ghostscript" yaml:"ghostscript"`
	GhostscriptPath    string `json:"ghostscript_path,omitempty" yaml:"ghostscript_path,omitempty"`
	GhostscriptVersion string `json:"ghostscript_version,omitempty" yaml:"ghostscript_version,omitempty"`
}

// Methods lists the compression methods that can actually run.
func (c Capabilities) Methods() []Method {
	if c.Ghostscript {
		return []Method{MethodLibrary, MethodGhostscript}
	}
	return []Method{MethodLibrary}
}

// DetectCapabilities looks for the Ghostscript binary and checks that it
// runs. Call it once at startup and pass the result to NewCompressor.
func DetectCapabilities(ctx context.Context, binary string) Capabilities {
	return detectCapabilities(ctx, execRunner{}, binary)
}

func detectCapabilities(ctx context.Context, runner commandRunner, binary string) Capabilities {
	if binary == "" {
		binary = DefaultGhostscriptBinary
	}
	path, err := runner.LookPath(binary)
	if err != nil {
		return Capabilities{}
	}
	out, err := runner.Run(ctx, ProbeTimeout, path, "--version")
	if err != nil {
		return Capabilities{}
	}
	return Capabilities{
		Ghostscript:        true,
		GhostscriptPath:    path,
		GhostscriptVersion: strings.TrimSpace(string(out)),
	}
}

// CompressOptions selects the compression method and Ghostscript preset.
type CompressOptions struct {
	Method Method
	Preset Preset
}

// CompressResult is the outcome of Compress. Warning is non-empty when the
// requested method could not be used.
type CompressResult struct {
	Data           []byte
	Method         Method
	Preset         Preset
	Warning        string
	OriginalSize   int
	CompressedSize int
}

// Ratio returns compressed size over original size.
func (r *CompressResult) Ratio() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return float64(r.CompressedSize) / float64(r.OriginalSize)
}

// Summary describes the size change in megabytes.
func (r *CompressResult) Summary() string {
	const mb = 1024 * 1024
	return fmt.Sprintf("Compressed using %s. Initial file size %.2f MB reduced to %.2f MB.",
		r.Method, float64(r.OriginalSize)/mb, float64(r.CompressedSize)/mb)
}

// Compressor shrinks PDFs with pdfcpu or, when available, Ghostscript.
type Compressor struct {
	caps    Capabilities
	tempDir string
	timeout time.Duration
	runner  commandRunner
	log     logrus.FieldLogger
}

// NewCompressor returns a Compressor. Ghostscript input and output are
// staged under tempDir.
func NewCompressor(caps Capabilities, tempDir string, timeout time.Duration, log logrus.FieldLogger) *Compressor {
	if timeout <= 0 {
		timeout = DefaultCLITimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Compressor{
		caps:    caps,
		tempDir: tempDir,
		timeout: timeout,
		runner:  execRunner{},
		log:     log,
	}
}

// Capabilities returns the tool availability the compressor was built with.
func (c *Compressor) Capabilities() Capabilities { return c.caps }

// Compress shrinks doc. A missing Ghostscript is not an error: the library
// compressor runs instead and the result carries FallbackWarning.
func (c *Compressor) Compress(ctx context.Context, doc *Document, opts CompressOptions) (*CompressResult, error) {
	method, err := ParseMethod(string(opts.Method))
	if err != nil {
		return nil, err
	}
	res := &CompressResult{Method: method, OriginalSize: doc.Size()}

	if method == MethodGhostscript {
		preset, err := ParsePreset(string(opts.Preset))
		if err != nil {
			return nil, err
		}

		data, err := c.ghostscript(ctx, doc, preset)
		var unavailable *ExternalToolUnavailableError
		switch {
		case err == nil:
			res.Data = data
			res.Preset = preset
		case errors.As(err, &unavailable):
			c.log.WithError(err).WithField("file", doc.Name()).Warn("falling back to library compression")
			res.Method = MethodLibrary
			res.Warning = FallbackWarning
		default:
			return nil, err
		}
	}

	if res.Data == nil {
		data, err := Resave(doc)
		if err != nil {
			return nil, err
		}
		res.Data = data
	}

	res.CompressedSize = len(res.Data)
	c.log.WithFields(logrus.Fields{
		"file":       doc.Name(),
		"method":     res.Method,
		"preset":     res.Preset,
		"original":   res.OriginalSize,
		"compressed": res.CompressedSize,
	}).Info("compressed PDF")
	return res, nil
}

// ghostscript stages doc in a private directory, runs gs and reads the
// result back. The staging directory is removed on every return path.
func (c *Compressor) ghostscript(ctx context.Context, doc *Document, preset Preset) (_ []byte, err error) {
	if !c.caps.Ghostscript {
		return nil, &ExternalToolUnavailableError{Tool: ghostscriptTool}
	}

	dir, err := c.stagingDir()
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil && err == nil {
			err = &IOError{Op: "remove staging directory", Path: dir, Err: rmErr}
		}
	}()

	inFile := filepath.Join(dir, "input.pdf")
	outFile := filepath.Join(dir, "output.pdf")
	if err := os.WriteFile(inFile, doc.Bytes(), 0o600); err != nil {
		return nil, &IOError{Op: "stage input", Path: inFile, Err: err}
	}

	output, err := c.runner.Run(ctx, c.timeout, c.caps.GhostscriptPath, ghostscriptArgs(preset, inFile, outFile)...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, &ExternalToolUnavailableError{Tool: ghostscriptTool, Err: err}
		}
		if len(output) > 0 {
			return nil, fmt.Errorf("ghostscript failed: %w\nOutput: %s", err, output)
		}
		return nil, fmt.Errorf("ghostscript failed: %w", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		return nil, &IOError{Op: "read ghostscript output", Path: outFile, Err: err}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("ghostscript produced an empty file")
	}
	return data, nil
}

func (c *Compressor) stagingDir() (string, error) {
	base := c.tempDir
	if base == "" {
		base = os.TempDir()
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", &IOError{Op: "create temp directory", Path: base, Err: err}
	}
	dir := filepath.Join(base, "gs_"+xid.New().String())
	if err := os.Mkdir(dir, 0o700); err != nil {
		return "", &IOError{Op: "create staging directory", Path: dir, Err: err}
	}
	return dir, nil
}

func ghostscriptArgs(preset Preset, inFile, outFile string) []string {
	return []string{
		"-sDEVICE=pdfwrite",
		"-dCompatibilityLevel=1.4",
		"-dPDFSETTINGS=/" + string(preset),
		"-dNOPAUSE",
		"-dQUIET",
		"-dBATCH",
		"-sOutputFile=" + outFile,
		inFile,
	}
}
