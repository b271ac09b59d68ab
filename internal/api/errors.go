// errors.go - Structured error handling for API responses
package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIError represents a structured API error response. Every error payload
// carries success=false so the upload form can treat all failures uniformly.
type APIError struct {
	Status  int    `json:"-"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewNoFileError creates a 400 error for a missing or empty file part.
func NewNoFileError(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "NO_FILE_PROVIDED",
		Message: message,
	}
}

// NewUnsupportedTypeError creates a 400 error for a disallowed extension.
func NewUnsupportedTypeError() *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "UNSUPPORTED_FILE_TYPE",
		Message: "Invalid file type. Only ZIP files are allowed.",
	}
}

// NewFileTooLargeError creates a 413 error for an oversized upload.
func NewFileTooLargeError(sizeBytes, maxBytes int64) *APIError {
	return &APIError{
		Status: http.StatusRequestEntityTooLarge,
		Code:   "FILE_TOO_LARGE",
		Message: fmt.Sprintf("File size (%.2f MB) exceeds maximum allowed size of %d MB.",
			float64(sizeBytes)/1024/1024, maxBytes/1024/1024),
	}
}

// NewInternalError creates a 500 Internal Server Error.
func NewInternalError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: message,
	}
	if cause != nil {
		err.Message = fmt.Sprintf("%s: %v", message, cause)
	}
	return err
}

// ErrorHandler converts every unhandled error into the failure JSON shape.
// Usage: e.HTTPErrorHandler = api.ErrorHandler
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apiErr *APIError

	switch e := err.(type) {
	case *APIError:
		apiErr = e
	case *echo.HTTPError:
		apiErr = &APIError{
			Status:  e.Code,
			Code:    "HTTP_ERROR",
			Message: fmt.Sprintf("%v", e.Message),
		}
		// BodyLimit middleware rejects oversized bodies with a bare 413;
		// reshape it to match the handler's own size rejection.
		if e.Code == http.StatusRequestEntityTooLarge {
			apiErr.Code = "FILE_TOO_LARGE"
			apiErr.Message = "File size exceeds the maximum allowed size. Please upload a smaller file."
		}
	default:
		apiErr = &APIError{
			Status:  http.StatusInternalServerError,
			Code:    "INTERNAL_ERROR",
			Message: "An unexpected error occurred",
		}
	}

	c.JSON(apiErr.Status, apiErr)
}
