package pdf

// Method selects how Compress shrinks a document.
type Method string

const (
	// MethodLibrary rewrites the file with pdfcpu's optimizer.
	MethodLibrary Method = "library"
	// MethodGhostscript re-renders the file through the gs binary.
	MethodGhostscript Method = "ghostscript"
)

// Preset is a Ghostscript -dPDFSETTINGS quality preset.
type Preset string

const (
	// PresetScreen is low resolution, smallest output, for on-screen viewing.
	PresetScreen Preset = "screen"
	// PresetEbook keeps better image quality for e-readers.
	PresetEbook Preset = "ebook"
)

// DefaultPreset is used when Ghostscript is requested without a preset.
const DefaultPreset = PresetEbook

// DefaultGhostscriptBinary is looked up on PATH at startup.
const DefaultGhostscriptBinary = "gs"

const ghostscriptTool = "ghostscript"

// ParseMethod maps user input to a Method. Empty input means MethodLibrary.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case "", MethodLibrary:
		return MethodLibrary, nil
	case MethodGhostscript:
		return MethodGhostscript, nil
	}
	return "", invalidOption("unknown compression method %q (supported: library, ghostscript)", s)
}

// ParsePreset maps user input to a Preset. Empty input means DefaultPreset.
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case "":
		return DefaultPreset, nil
	case PresetScreen, PresetEbook:
		return Preset(s), nil
	}
	return "", invalidOption("unknown compression preset %q (supported: screen, ebook)", s)
}
