// Package validator orchestrates processing of an uploaded ZIP archive:
// save to a private workspace, inspect the member listing, optionally
// extract one XML member, and clean up. The package keeps the product's
// historical name; content is surfaced for the user to inspect, with only
// an advisory well-formedness scan (no schema validation).
package validator

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/xmlvalidator/backend/internal/archive"
	"github.com/xmlvalidator/backend/internal/config"
	"github.com/xmlvalidator/backend/internal/models"
	"github.com/xmlvalidator/backend/internal/scratch"
)

// Service processes uploaded archives. It holds no per-request state; every
// request works in its own scratch workspace.
type Service struct {
	scratch *scratch.Manager
	profile *config.Profile
	log     zerolog.Logger
}

// NewService creates a new validator service.
func NewService(scratchMgr *scratch.Manager, profile *config.Profile, logger zerolog.Logger) *Service {
	return &Service{
		scratch: scratchMgr,
		profile: profile,
		log:     logger,
	}
}

// Process saves src under name into a fresh workspace, inspects it, and
// optionally extracts target. It returns the shaped report and the HTTP
// status to respond with. The workspace is removed on every return path.
func (s *Service) Process(name string, src io.Reader, target string) (*models.Report, int) {
	ws, err := s.scratch.Acquire()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to acquire workspace")
		return models.Failure("Error processing file: could not allocate temporary storage."), http.StatusInternalServerError
	}
	defer func() {
		if err := ws.Release(); err != nil {
			s.log.Warn().Err(err).Str("dir", ws.Dir()).Msg("failed to release workspace")
		}
	}()

	path, size, err := ws.SaveUpload(name, src)
	if err != nil {
		s.log.Error().Err(err).Str("file", name).Msg("failed to save upload")
		return models.Failure("Error processing file: could not save upload."), http.StatusInternalServerError
	}
	s.log.Debug().Str("file", name).Int64("size", size).Msg("upload saved")

	listing, err := archive.Inspect(path, s.profile.MemberSuffixes)
	if err != nil {
		if errors.Is(err, archive.ErrInvalidArchive) {
			return models.Failure("Invalid or corrupted zip file."), http.StatusBadRequest
		}
		s.log.Error().Err(err).Str("file", name).Msg("inspect failed")
		return models.Failure("Error processing file: could not read archive."), http.StatusInternalServerError
	}

	report := models.NewReport()
	report.ExtractedFiles = listing.Members
	report.XMLFiles = listing.XMLMembers
	report.XMLTimestamps = listing.Timestamps

	if target == "" {
		report.Success = true
		report.Message = fmt.Sprintf("Found %d XML file(s) in '%s'.", len(listing.XMLMembers), name)
		s.log.Info().Str("file", name).Int("members", len(listing.Members)).
			Int("xml", len(listing.XMLMembers)).Msg("archive inspected")
		return report, http.StatusOK
	}

	if !listing.HasXMLMember(target) {
		report.Error = fmt.Sprintf("File '%s' not found among XML files in the archive.", target)
		return report, http.StatusNotFound
	}

	content, err := archive.Extract(path, target)
	if err != nil {
		switch {
		case errors.Is(err, archive.ErrMemberNotFound):
			report.Error = fmt.Sprintf("File '%s' not found among XML files in the archive.", target)
			return report, http.StatusNotFound
		case errors.Is(err, archive.ErrNotUTF8):
			report.Error = fmt.Sprintf("File '%s' could not be decoded as UTF-8 text.", target)
			return report, http.StatusUnprocessableEntity
		default:
			s.log.Error().Err(err).Str("member", target).Msg("extract failed")
			report.Error = fmt.Sprintf("Error reading file '%s'.", target)
			return report, http.StatusInternalServerError
		}
	}

	report.Success = true
	report.Message = fmt.Sprintf("Successfully read '%s'.", target)
	report.XMLContent = &content
	report.XMLFilename = target
	if s.profile.CheckWellFormed {
		wf := archive.CheckWellFormed(content)
		report.WellFormed = &wf
	}

	s.log.Info().Str("file", name).Str("member", target).
		Int("content_bytes", len(content)).Msg("member extracted")
	return report, http.StatusOK
}
