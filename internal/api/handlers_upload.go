// handlers_upload.go - Archive upload handlers
package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/xmlvalidator/backend/internal/config"
	"github.com/xmlvalidator/backend/internal/models"
	"github.com/xmlvalidator/backend/internal/validator"
)

// UploadHandlerImpl implements the UploadHandler interface.
type UploadHandlerImpl struct {
	svc      *validator.Service
	profile  *config.Profile
	maxBytes int64
}

// NewUploadHandler creates a new upload handler instance. maxBytes caps the
// declared upload size; zero disables the pre-check (the BodyLimit
// middleware still applies).
func NewUploadHandler(svc *validator.Service, profile *config.Profile, maxBytes int64) UploadHandler {
	return &UploadHandlerImpl{
		svc:      svc,
		profile:  profile,
		maxBytes: maxBytes,
	}
}

// HandleUpload accepts a multipart form with a required "file" field (ZIP)
// and an optional "target_xml" field naming one member to extract.
func (h *UploadHandlerImpl) HandleUpload(c echo.Context) error {
	report, status := h.processUpload(c)
	return c.JSON(status, report)
}

// HandleUploadMsgpack is HandleUpload with a MessagePack-encoded response,
// for programmatic clients.
func (h *UploadHandlerImpl) HandleUploadMsgpack(c echo.Context) error {
	report, status := h.processUpload(c)

	b, err := msgpack.Marshal(report)
	if err != nil {
		return NewInternalError("failed to encode response", err)
	}

	return c.Blob(status, "application/msgpack", b)
}

// processUpload runs the shared validation and processing pipeline. All
// rejection branches return a shaped failure report; nothing is written
// outside the request's scratch workspace.
func (h *UploadHandlerImpl) processUpload(c echo.Context) (*models.Report, int) {
	fh, err := c.FormFile("file")
	if err != nil {
		return models.Failure("No file provided"), http.StatusBadRequest
	}

	if fh.Filename == "" {
		return models.Failure("No file selected"), http.StatusBadRequest
	}

	if !h.profile.Allowed(fh.Filename) {
		return models.Failure("Invalid file type. Only ZIP files are allowed."), http.StatusBadRequest
	}

	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		e := NewFileTooLargeError(fh.Size, h.maxBytes)
		return models.Failure(e.Message), http.StatusRequestEntityTooLarge
	}

	target := strings.TrimSpace(c.FormValue("target_xml"))

	src, err := fh.Open()
	if err != nil {
		return models.Failure("Error processing file: could not open upload."), http.StatusInternalServerError
	}
	defer src.Close()

	return h.svc.Process(fh.Filename, src, target)
}
