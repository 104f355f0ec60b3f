package api

const (
	// ServiceName is reported by the health check
	ServiceName = "pdf_toolkit"

	// MultipartMemory is how much of a multipart body gin keeps in memory
	// before spilling file parts to disk
	MultipartMemory = 32 << 20

	// MaxErrorMessageLength truncates error messages returned to clients
	MaxErrorMessageLength = 200

	// ContentTypePDF and ContentTypeZIP are the download content types
	ContentTypePDF = "application/pdf"
	ContentTypeZIP = "application/zip"

	// WarningHeader carries non-fatal warnings such as a compression fallback
	WarningHeader = "X-PDF-Warning"

	// CompressionHeader carries the compression size summary
	CompressionHeader = "X-PDF-Compression"

	// RequestIDHeader echoes the per-request ID used in logs
	RequestIDHeader = "X-Request-ID"
)
