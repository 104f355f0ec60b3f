package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pdf_toolkit/pagerange"
	pdfPkg "pdf_toolkit/pdf"
)

type pagesForm struct {
	Pages string `form:"pages" binding:"required"`
}

type rangesForm struct {
	Ranges string `form:"ranges" binding:"required"`
}

type compressForm struct {
	Method string `form:"method" binding:"omitempty,oneof=library ghostscript"`
	Preset string `form:"preset" binding:"omitempty,oneof=screen ebook"`
}

type insertForm struct {
	Range string `form:"range" binding:"required"`
	After string `form:"after" binding:"required"`
}

type watermarkForm struct {
	Text     string  `form:"text" binding:"required"`
	Pages    string  `form:"pages"`
	Opacity  float64 `form:"opacity" binding:"omitempty,gt=0,lte=1"`
	FontSize int     `form:"font_size" binding:"omitempty,min=1,max=500"`
	Rotation int     `form:"rotation,default=45" binding:"min=-180,max=180"`
	Stamp    bool    `form:"stamp"`
}

func HandleInfo(c *gin.Context, config *Config) {
	doc, err := readUpload(c, config, "pdf")
	if err != nil {
		respondError(c, config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filename":    doc.Name(),
		"total_pages": doc.PageCount(),
		"size":        doc.Size(),
	})
}

func HandleMerge(c *gin.Context, config *Config) {
	docs, err := readUploads(c, config, "pdf")
	if err != nil {
		respondError(c, config, err)
		return
	}

	merged, err := pdfPkg.Merge(docs...)
	if err != nil {
		respondError(c, config, err)
		return
	}

	sendFile(c, "merged.pdf", ContentTypePDF, merged)
}

func HandleCompress(c *gin.Context, config *Config, compressor *pdfPkg.Compressor) {
	var form compressForm
	if err := c.ShouldBind(&form); err != nil {
		respondError(c, config, bindError(err))
		return
	}

	doc, err := readUpload(c, config, "pdf")
	if err != nil {
		respondError(c, config, err)
		return
	}

	res, err := compressor.Compress(c.Request.Context(), doc, pdfPkg.CompressOptions{
		Method: pdfPkg.Method(form.Method),
		Preset: pdfPkg.Preset(form.Preset),
	})
	if err != nil {
		respondError(c, config, err)
		return
	}

	if res.Warning != "" {
		c.Header(WarningHeader, res.Warning)
	}
	c.Header(CompressionHeader, res.Summary())
	sendFile(c, outputName(doc, "compressed", "pdf"), ContentTypePDF, res.Data)
}

// planInsert reads the two uploads and the insert form. Only one range may
// be inserted at a time.
func planInsert(c *gin.Context, config *Config) (*pdfPkg.InsertPlan, error) {
	var form insertForm
	if err := c.ShouldBind(&form); err != nil {
		return nil, bindError(err)
	}

	target, err := readUpload(c, config, "main")
	if err != nil {
		return nil, err
	}
	source, err := readUpload(c, config, "insert")
	if err != nil {
		return nil, err
	}

	ranges, err := source.ParseRanges(form.Range)
	if err != nil {
		return nil, err
	}
	if len(ranges) != 1 {
		return nil, &pagerange.InvalidRangeError{Token: form.Range, Reason: "enter a single range like '3-5' or a single page like '7'"}
	}

	after, err := pagerange.ParseInsertionPoint(form.After, target.PageCount())
	if err != nil {
		return nil, err
	}

	return pdfPkg.PlanInsert(target, source, ranges[0], after)
}

func HandleInsertPreview(c *gin.Context, config *Config) {
	plan, err := planInsert(c, config)
	if err != nil {
		respondError(c, config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"segments":    plan.Segments(),
		"total_pages": plan.TotalPages(),
		"description": plan.Describe(),
	})
}

func HandleInsert(c *gin.Context, config *Config) {
	plan, err := planInsert(c, config)
	if err != nil {
		respondError(c, config, err)
		return
	}

	out, err := pdfPkg.Insert(plan)
	if err != nil {
		respondError(c, config, err)
		return
	}

	sendFile(c, outputName(plan.Target, "inserted", "pdf"), ContentTypePDF, out)
}

func HandleSplit(c *gin.Context, config *Config) {
	var form rangesForm
	if err := c.ShouldBind(&form); err != nil {
		respondError(c, config, bindError(err))
		return
	}

	doc, err := readUpload(c, config, "pdf")
	if err != nil {
		respondError(c, config, err)
		return
	}

	ranges, err := doc.ParseRanges(form.Ranges)
	if err != nil {
		respondError(c, config, err)
		return
	}

	files, err := pdfPkg.SplitRanges(doc, ranges)
	if err != nil {
		respondError(c, config, err)
		return
	}

	if len(files) == 1 {
		sendFile(c, files[0].Name, ContentTypePDF, files[0].Data)
		return
	}
	sendArchive(c, config, files, outputName(doc, "split_ranges", "zip"))
}

func HandleSplitPages(c *gin.Context, config *Config) {
	doc, err := readUpload(c, config, "pdf")
	if err != nil {
		respondError(c, config, err)
		return
	}

	files, err := pdfPkg.SplitPages(doc)
	if err != nil {
		respondError(c, config, err)
		return
	}

	sendArchive(c, config, files, outputName(doc, "split_pages", "zip"))
}

func HandleRemovePages(c *gin.Context, config *Config) {
	var form pagesForm
	if err := c.ShouldBind(&form); err != nil {
		respondError(c, config, bindError(err))
		return
	}

	handlePDFFile(c, config, func(doc *pdfPkg.Document) ([]byte, error) {
		ranges, err := doc.ParseRanges(form.Pages)
		if err != nil {
			return nil, err
		}
		return pdfPkg.RemovePages(doc, ranges)
	}, "pages_removed")
}

func HandleWatermark(c *gin.Context, config *Config) {
	var form watermarkForm
	if err := c.ShouldBind(&form); err != nil {
		respondError(c, config, bindError(err))
		return
	}

	handlePDFFile(c, config, func(doc *pdfPkg.Document) ([]byte, error) {
		return pdfPkg.Watermark(doc, pdfPkg.WatermarkOptions{
			Text:     form.Text,
			Pages:    form.Pages,
			Opacity:  form.Opacity,
			FontSize: form.FontSize,
			Rotation: form.Rotation,
			Stamp:    form.Stamp,
		})
	}, "watermarked")
}

func HandleCapabilities(c *gin.Context, config *Config) {
	c.JSON(http.StatusOK, gin.H{
		"methods":     config.Capabilities.Methods(),
		"presets":     []pdfPkg.Preset{pdfPkg.PresetScreen, pdfPkg.PresetEbook},
		"ghostscript": config.Capabilities,
	})
}

// handlePDFFile runs a single-document operation on the "pdf" upload and
// returns the result as <base>_<suffix>.pdf.
func handlePDFFile(c *gin.Context, config *Config, operation func(*pdfPkg.Document) ([]byte, error), suffix string) {
	doc, err := readUpload(c, config, "pdf")
	if err != nil {
		respondError(c, config, err)
		return
	}

	out, err := operation(doc)
	if err != nil {
		respondError(c, config, err)
		return
	}

	config.Logger.WithFields(logrus.Fields{
		"file":      doc.Name(),
		"operation": suffix,
		"pages":     doc.PageCount(),
	}).Debug("PDF operation completed")

	sendFile(c, outputName(doc, suffix, "pdf"), ContentTypePDF, out)
}

func sendArchive(c *gin.Context, config *Config, files []pdfPkg.File, name string) {
	archive, err := pdfPkg.Archive(files)
	if err != nil {
		respondError(c, config, err)
		return
	}
	sendFile(c, name, ContentTypeZIP, archive)
}
