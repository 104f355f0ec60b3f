package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"pdf_toolkit/pagerange"
	pdfPkg "pdf_toolkit/pdf"
)

// requestError is a client error with a fixed status and message.
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string { return e.msg }

// bindError turns a gin binding failure into a readable client error.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			return &requestError{status: http.StatusBadRequest, msg: fmt.Sprintf("%s is required", fe.Field())}
		}
		return &requestError{status: http.StatusBadRequest, msg: fmt.Sprintf("invalid %s: failed %q check", fe.Field(), fe.Tag())}
	}
	return &requestError{status: http.StatusBadRequest, msg: err.Error()}
}

// statusFor maps an operation error to an HTTP status.
func statusFor(err error) int {
	var (
		reqErr      *requestError
		rangeErr    *pagerange.InvalidRangeError
		unsupported *pdfPkg.UnsupportedFileError
	)
	switch {
	case errors.As(err, &reqErr):
		return reqErr.status
	case errors.As(err, &rangeErr), errors.Is(err, pdfPkg.ErrInvalidOption):
		return http.StatusBadRequest
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	}
	return http.StatusInternalServerError
}

// respondError reports err to the client as a single message and logs it.
func respondError(c *gin.Context, config *Config, err error) {
	status := statusFor(err)

	entry := config.Logger.WithFields(logrus.Fields{
		"path":   c.Request.URL.Path,
		"status": status,
	}).WithError(err)
	if status >= http.StatusInternalServerError {
		entry.Error("PDF operation failed")
	} else {
		entry.Info("PDF request rejected")
	}

	errorMsg := err.Error()
	if errorMsg == "" {
		errorMsg = "PDF operation failed"
	}
	// Truncate long error messages but include key info
	if len(errorMsg) > MaxErrorMessageLength {
		errorMsg = errorMsg[:MaxErrorMessageLength] + "..."
	}
	c.AbortWithStatusJSON(status, gin.H{"error": errorMsg})
}
