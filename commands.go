package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pdf_toolkit/pagerange"
	"pdf_toolkit/pdf"
)

// openFile reads a PDF from disk.
func openFile(path string) (*pdf.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &pdf.IOError{Op: "read", Path: path, Err: err}
	}
	return pdf.Open(filepath.Base(path), data)
}

// outputPath returns the -o flag, or "<base>_<suffix>.<ext>" next to the
// input file.
func outputPath(cmd *cobra.Command, doc *pdf.Document, input, suffix, ext string) string {
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		return out
	}
	return filepath.Join(filepath.Dir(input), doc.BaseName()+"_"+suffix+"."+ext)
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &pdf.IOError{Op: "write", Path: path, Err: err}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", path, len(data))
	return nil
}

var infoCmd = &cobra.Command{
	Use:   "info <file.pdf>",
	Short: "Print the page count and size of a PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := openFile(args[0])
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]interface{}{
				"filename":    doc.Name(),
				"total_pages": doc.PageCount(),
				"size":        doc.Size(),
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d pages, %d bytes\n", doc.Name(), doc.PageCount(), doc.Size())
		return nil
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge <a.pdf> <b.pdf> [more.pdf...]",
	Short: "Concatenate PDFs in the order given",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		docs := make([]*pdf.Document, 0, len(args))
		for _, path := range args {
			doc, err := openFile(path)
			if err != nil {
				return err
			}
			docs = append(docs, doc)
		}

		merged, err := pdf.Merge(docs...)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			out = "merged.pdf"
		}
		return writeOutput(cmd, out, merged)
	},
}

var splitCmd = &cobra.Command{
	Use:   "split <file.pdf>",
	Short: "Split a PDF by page ranges, or into single pages",
	Long: `split writes one PDF per range given with --ranges, packed into a ZIP
archive when there is more than one. With --pages every page becomes its own
PDF inside the archive.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := openFile(args[0])
		if err != nil {
			return err
		}

		expr, _ := cmd.Flags().GetString("ranges")
		perPage, _ := cmd.Flags().GetBool("pages")
		if (expr == "") == !perPage {
			return fmt.Errorf("pass exactly one of --ranges or --pages")
		}

		var files []pdf.File
		suffix := "split_pages"
		if perPage {
			files, err = pdf.SplitPages(doc)
		} else {
			suffix = "split_ranges"
			var ranges []pagerange.PageRange
			if ranges, err = doc.ParseRanges(expr); err == nil {
				files, err = pdf.SplitRanges(doc, ranges)
			}
		}
		if err != nil {
			return err
		}

		if len(files) == 1 {
			out, _ := cmd.Flags().GetString("output")
			if out == "" {
				out = filepath.Join(filepath.Dir(args[0]), files[0].Name)
			}
			return writeOutput(cmd, out, files[0].Data)
		}

		archive, err := pdf.Archive(files)
		if err != nil {
			return err
		}
		return writeOutput(cmd, outputPath(cmd, doc, args[0], suffix, "zip"), archive)
	},
}

var insertCmd = &cobra.Command{
	Use:   "insert <main.pdf> <insert.pdf>",
	Short: "Insert a page range from one PDF into another",
	Long: `insert copies the pages selected by --range from the second PDF into
the first, after page --after of the first. --after must be between 1 and
the page count of the first PDF. With --preview only the resulting page
order is printed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := openFile(args[0])
		if err != nil {
			return err
		}
		source, err := openFile(args[1])
		if err != nil {
			return err
		}

		expr, _ := cmd.Flags().GetString("range")
		ranges, err := source.ParseRanges(expr)
		if err != nil {
			return err
		}
		if len(ranges) != 1 {
			return &pagerange.InvalidRangeError{Token: expr, Reason: "enter a single range like '3-5' or a single page like '7'"}
		}

		after, _ := cmd.Flags().GetInt("after")
		if err := pagerange.ValidateInsertionPoint(after, target.PageCount()); err != nil {
			return err
		}

		plan, err := pdf.PlanInsert(target, source, ranges[0], after)
		if err != nil {
			return err
		}

		if preview, _ := cmd.Flags().GetBool("preview"); preview {
			fmt.Fprintln(cmd.OutOrStdout(), plan.Describe())
			return nil
		}

		out, err := pdf.Insert(plan)
		if err != nil {
			return err
		}
		return writeOutput(cmd, outputPath(cmd, target, args[0], "inserted", "pdf"), out)
	},
}

var compressCmd = &cobra.Command{
	Use:   "compress <file.pdf>",
	Short: "Reduce the size of a PDF",
	Long: `compress rewrites a PDF with object and cross-reference streams, or
runs it through Ghostscript with --method ghostscript. When Ghostscript is
not installed the library method is used and a warning is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}

		doc, err := openFile(args[0])
		if err != nil {
			return err
		}

		method, _ := cmd.Flags().GetString("method")
		preset, _ := cmd.Flags().GetString("preset")
		opts := pdf.CompressOptions{Method: pdf.Method(method), Preset: pdf.Preset(preset)}

		var caps pdf.Capabilities
		if opts.Method == pdf.MethodGhostscript {
			caps = pdf.DetectCapabilities(cmd.Context(), config.GhostscriptBinary)
		}
		compressor := pdf.NewCompressor(caps, os.TempDir(), config.GhostscriptTimeout, config.Logger)

		res, err := compressor.Compress(cmd.Context(), doc, opts)
		if err != nil {
			return err
		}
		if res.Warning != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", res.Warning)
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Summary())
		return writeOutput(cmd, outputPath(cmd, doc, args[0], "compressed", "pdf"), res.Data)
	},
}

var watermarkCmd = &cobra.Command{
	Use:   "watermark <file.pdf>",
	Short: "Add a text watermark or stamp",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := openFile(args[0])
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		var opts pdf.WatermarkOptions
		opts.Text, _ = flags.GetString("text")
		opts.Pages, _ = flags.GetString("pages")
		opts.Opacity, _ = flags.GetFloat64("opacity")
		opts.FontSize, _ = flags.GetInt("font-size")
		opts.Rotation, _ = flags.GetInt("rotation")
		opts.Stamp, _ = flags.GetBool("stamp")

		out, err := pdf.Watermark(doc, opts)
		if err != nil {
			return err
		}
		return writeOutput(cmd, outputPath(cmd, doc, args[0], "watermarked", "pdf"), out)
	},
}

var removePagesCmd = &cobra.Command{
	Use:   "remove-pages <file.pdf>",
	Short: "Delete the pages selected by --pages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := openFile(args[0])
		if err != nil {
			return err
		}

		expr, _ := cmd.Flags().GetString("pages")
		ranges, err := doc.ParseRanges(expr)
		if err != nil {
			return err
		}

		out, err := pdf.RemovePages(doc, ranges)
		if err != nil {
			return err
		}
		return writeOutput(cmd, outputPath(cmd, doc, args[0], "pages_removed", "pdf"), out)
	},
}

func init() {
	infoCmd.Flags().Bool("json", false, "print as JSON")

	mergeCmd.Flags().StringP("output", "o", "", "output file (default merged.pdf)")

	splitCmd.Flags().String("ranges", "", `page ranges, e.g. "1-3, 5-8, 10"`)
	splitCmd.Flags().Bool("pages", false, "one PDF per page")
	splitCmd.Flags().StringP("output", "o", "", "output file")

	insertCmd.Flags().String("range", "", `pages of the second PDF to insert, e.g. "3-5"`)
	insertCmd.Flags().Int("after", 0, "insert after this page of the main PDF")
	insertCmd.Flags().Bool("preview", false, "print the resulting page order only")
	insertCmd.Flags().StringP("output", "o", "", "output file")
	_ = insertCmd.MarkFlagRequired("range")
	_ = insertCmd.MarkFlagRequired("after")

	compressCmd.Flags().String("method", string(pdf.MethodLibrary), "library or ghostscript")
	compressCmd.Flags().String("preset", string(pdf.DefaultPreset), "ghostscript preset: screen or ebook")
	compressCmd.Flags().StringP("output", "o", "", "output file")

	watermarkCmd.Flags().String("text", "", "watermark text")
	watermarkCmd.Flags().String("pages", "", "page ranges to watermark (default all)")
	watermarkCmd.Flags().Float64("opacity", pdf.DefaultWatermarkOpacity, "opacity in (0, 1]")
	watermarkCmd.Flags().Int("font-size", pdf.DefaultWatermarkFontSize, "font size in points")
	watermarkCmd.Flags().Int("rotation", pdf.DefaultWatermarkRotation, "rotation in degrees")
	watermarkCmd.Flags().Bool("stamp", false, "draw on top of the page content")
	watermarkCmd.Flags().StringP("output", "o", "", "output file")
	_ = watermarkCmd.MarkFlagRequired("text")

	removePagesCmd.Flags().String("pages", "", `pages to delete, e.g. "2, 4-6"`)
	removePagesCmd.Flags().StringP("output", "o", "", "output file")
	_ = removePagesCmd.MarkFlagRequired("pages")

	rootCmd.AddCommand(infoCmd, mergeCmd, splitCmd, insertCmd, compressCmd, watermarkCmd, removePagesCmd)
}
