package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"golang.org/x/text/unicode/norm"

	pdfPkg "pdf_toolkit/pdf"
)

// readUpload opens the PDF uploaded in the given form field.
func readUpload(c *gin.Context, config *Config, field string) (*pdfPkg.Document, error) {
	_, header, err := c.Request.FormFile(field)
	if err != nil {
		return nil, &requestError{status: http.StatusBadRequest, msg: fmt.Sprintf("No PDF file provided in field %q", field)}
	}
	return openUpload(header, config)
}

// readUploads opens every PDF uploaded in the given form field, in order.
func readUploads(c *gin.Context, config *Config, field string) ([]*pdfPkg.Document, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, &requestError{status: http.StatusBadRequest, msg: "Expected a multipart form upload"}
	}

	headers := form.File[field]
	docs := make([]*pdfPkg.Document, 0, len(headers))
	for _, header := range headers {
		doc, err := openUpload(header, config)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func openUpload(header *multipart.FileHeader, config *Config) (*pdfPkg.Document, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", header.Filename, err)
	}
	defer file.Close()

	name := sanitizeFilename(header.Filename)

	// Validate PDF file
	if err := validatePDFFile(file, header, config.MaxFileSize); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(file, config.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", name, err)
	}
	if int64(len(data)) > config.MaxFileSize {
		return nil, fileTooLarge(int64(len(data)), config.MaxFileSize)
	}

	return pdfPkg.Open(name, data)
}

// validatePDFFile checks the upload size and sniffs the content type
func validatePDFFile(file multipart.File, header *multipart.FileHeader, maxSize int64) error {
	if header.Size > maxSize {
		return fileTooLarge(header.Size, maxSize)
	}

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return fmt.Errorf("failed to read file header: %w", err)
	}
	if !mtype.Is(ContentTypePDF) {
		return &pdfPkg.UnsupportedFileError{
			Name:   sanitizeFilename(header.Filename),
			Reason: fmt.Sprintf("expected a PDF, got %s", mtype.String()),
		}
	}

	// Seek back to beginning for subsequent reads
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to reset file position: %w", err)
	}

	return nil
}

func fileTooLarge(size, maxSize int64) error {
	return &requestError{
		status: http.StatusRequestEntityTooLarge,
		msg:    fmt.Sprintf("file size %d exceeds maximum allowed %d bytes", size, maxSize),
	}
}

// sanitizeFilename removes path traversal attempts and dangerous characters
func sanitizeFilename(filename string) string {
	filename = norm.NFC.String(filename)

	// Remove directory separators and path traversal attempts
	filename = strings.ReplaceAll(filename, "..", "")
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")

	// Get just the base filename to prevent path issues
	filename = filepath.Base(filename)

	filename = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || r == '"' {
			return -1
		}
		return r
	}, filename)
	filename = strings.TrimSpace(filename)

	// If empty after sanitization, use default
	if filename == "" || filename == "." {
		filename = "document.pdf"
	}

	return filename
}

// outputName builds "<base>_<suffix>.<ext>" for a download.
func outputName(doc *pdfPkg.Document, suffix, ext string) string {
	return sanitizeFilename(doc.BaseName() + "_" + suffix + "." + ext)
}

// sendFile returns data as a download attachment.
func sendFile(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
