package api

import (
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/beadfanatic/server/internal/domain"
	domainerrors "github.com/beadfanatic/server/internal/errors"
	"github.com/beadfanatic/server/internal/identify"
	"github.com/beadfanatic/server/internal/media/images"
	"github.com/beadfanatic/server/internal/service"
)

// The identify endpoint speaks its own wire format rather than the
// standard envelope: {description, analysis, suggestions, debug} on
// success, {error, debug} on failure. It is registered as a plain chi
// handler because huma does not model multipart uploads well.
func (s *Server) registerIdentifyRoutes() {
	limited := RateLimitMiddleware(s.identifyLimiter, s.logger)
	s.router.With(limited).Post("/api/v1/identify", s.handleIdentify)
}

// IdentifyResponse is the success body of the identify endpoint.
type IdentifyResponse struct {
	Description string                `json:"description"`
	Analysis    identify.Analysis     `json:"analysis"`
	Suggestions []identify.Suggestion `json:"suggestions"`
	Debug       IdentifyDebug         `json:"debug"`
}

// IdentifyDebug carries diagnostic metadata alongside the result.
type IdentifyDebug struct {
	ImageInfo      *images.Info `json:"image_info,omitempty"`
	AnalysisMethod string       `json:"analysis_method"`
	Model          string       `json:"model,omitempty"`
	ProvidersTried []string     `json:"providers_tried,omitempty"`
	Timestamp      string       `json:"timestamp"`
}

// IdentifyError is the failure body of the identify endpoint.
type IdentifyError struct {
	Error string         `json:"error"`
	Debug map[string]any `json:"debug,omitempty"`
}

func (s *Server) handleIdentify(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("identify handler panic", "panic", rec)
			writeIdentifyJSON(w, http.StatusInternalServerError, IdentifyError{
				Error: "internal server error",
				Debug: map[string]any{
					"error_message": fmt.Sprint(rec),
					"timestamp":     timestamp(),
				},
			}, s.logger)
		}
	}()

	// Upload constraints are enforced before any provider call.
	maxBytes := service.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+(1<<20))

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeIdentifyJSON(w, http.StatusBadRequest,
			IdentifyError{Error: "could not parse multipart form"}, s.logger)
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck // Best-effort temp file cleanup

	file, header, err := r.FormFile("image")
	if err != nil {
		writeIdentifyJSON(w, http.StatusBadRequest,
			IdentifyError{Error: "no image file provided"}, s.logger)
		return
	}
	defer file.Close()

	if header.Size > maxBytes {
		writeIdentifyJSON(w, http.StatusBadRequest,
			IdentifyError{Error: "image exceeds the 5 MiB upload limit"}, s.logger)
		return
	}
	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		writeIdentifyJSON(w, http.StatusBadRequest,
			IdentifyError{Error: "uploaded file is not an image"}, s.logger)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		writeIdentifyJSON(w, http.StatusBadRequest,
			IdentifyError{Error: "could not read uploaded file"}, s.logger)
		return
	}

	result, err := s.identifyService.Identify(r.Context(), data, header.Filename, getClientIP(r))
	if err != nil {
		s.writeIdentifyFailure(w, err)
		return
	}

	debug := IdentifyDebug{
		ImageInfo:      result.ImageInfo,
		AnalysisMethod: result.Method,
		Timestamp:      timestamp(),
	}
	if result.Method == domain.MethodAI {
		debug.Model = result.Model
		debug.ProvidersTried = result.Providers
	}

	writeIdentifyJSON(w, http.StatusOK, IdentifyResponse{
		Description: result.Description,
		Analysis:    result.Analysis,
		Suggestions: result.Suggestions,
		Debug:       debug,
	}, s.logger)
}

// writeIdentifyFailure maps pipeline errors to the endpoint's contract:
// 400 for any rejected upload, 503 with per-provider diagnostics when
// captioning is exhausted, 500 otherwise.
func (s *Server) writeIdentifyFailure(w http.ResponseWriter, err error) {
	var domainErr *domainerrors.Error
	if domainerrors.As(err, &domainErr) {
		switch domainErr.Code {
		case domainerrors.CodeValidation, domainerrors.CodeTooLarge, domainerrors.CodeUnsupportedMedia:
			writeIdentifyJSON(w, http.StatusBadRequest,
				IdentifyError{Error: domainErr.Message}, s.logger)
			return
		case domainerrors.CodeUnavailable:
			writeIdentifyJSON(w, http.StatusServiceUnavailable, IdentifyError{
				Error: domainErr.Message,
				Debug: map[string]any{
					"providers": domainErr.Details,
					"timestamp": timestamp(),
				},
			}, s.logger)
			return
		}
	}

	s.logger.Error("identification failed", "error", err)
	writeIdentifyJSON(w, http.StatusInternalServerError, IdentifyError{
		Error: "internal server error",
		Debug: map[string]any{
			"error_message": err.Error(),
			"timestamp":     timestamp(),
		},
	}, s.logger)
}

func writeIdentifyJSON(w http.ResponseWriter, status int, body any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.MarshalWrite(w, body); err != nil {
		logger.Error("encode identify response", "error", err)
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
