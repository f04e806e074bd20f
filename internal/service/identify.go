// Package service provides the business logic layer: identification
// orchestration, content serving, and search maintenance.
package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/beadfanatic/server/internal/domain"
	"github.com/beadfanatic/server/internal/errors"
	"github.com/beadfanatic/server/internal/id"
	"github.com/beadfanatic/server/internal/identify"
	"github.com/beadfanatic/server/internal/media/images"
	"github.com/beadfanatic/server/internal/store"
	"github.com/beadfanatic/server/internal/vision"
)

// maxUploadBytes is the largest accepted image upload.
const maxUploadBytes = 5 << 20 // 5 MiB

// MaxUploadBytes returns the upload size limit for the API layer.
func MaxUploadBytes() int64 { return maxUploadBytes }

// IdentifyService orchestrates a bead identification: validate the upload,
// caption it, analyze the caption, rank suggestions, and record the request.
type IdentifyService struct {
	chain  *vision.Chain
	store  store.IdentificationStore
	logger *slog.Logger
}

// NewIdentifyService creates an identification service.
func NewIdentifyService(chain *vision.Chain, historyStore store.IdentificationStore, logger *slog.Logger) *IdentifyService {
	return &IdentifyService{
		chain:  chain,
		store:  historyStore,
		logger: logger,
	}
}

// IdentifyResult is the full outcome of one identification.
type IdentifyResult struct {
	ID          string
	Description string
	Analysis    identify.Analysis
	Suggestions []identify.Suggestion
	Method      string // domain.MethodAI or domain.MethodFallback
	Model       string // provider name when Method is AI
	Providers   []string
	ImageInfo   *images.Info
	Duration    time.Duration
}

// Identify runs the full pipeline for one uploaded image.
//
// The upload is validated before any provider is called. When no caption
// provider is configured the service degrades to filename-keyword analysis,
// labeled as such; when providers are configured but all fail, the error
// carries per-provider diagnostics.
func (s *IdentifyService) Identify(ctx context.Context, image []byte, filename, clientIP string) (*IdentifyResult, error) {
	start := time.Now()

	if len(image) == 0 {
		return nil, errors.Validation("no image provided")
	}
	if len(image) > maxUploadBytes {
		return nil, errors.TooLarge("image exceeds the 5 MiB upload limit")
	}

	info, err := images.Inspect(image)
	if err != nil {
		if errors.Is(err, images.ErrUnsupportedType) {
			return nil, errors.UnsupportedMedia("upload is not a supported image format")
		}
		return nil, errors.Validation("image could not be decoded").WithCause(err)
	}

	identID, err := id.Generate(id.PrefixIdentification)
	if err != nil {
		return nil, errors.Internal("could not generate identification ID").WithCause(err)
	}

	result := &IdentifyResult{
		ID:        identID,
		ImageInfo: info,
	}

	if s.chain.Empty() {
		result.Description = fallbackCaption(filename)
		result.Method = domain.MethodFallback
		s.logger.Warn("no caption provider configured, using filename analysis",
			"filename", filename)
	} else {
		caption, err := s.chain.Caption(ctx, image, info.ContentType)
		if err != nil {
			var chainErr *vision.ChainError
			if errors.As(err, &chainErr) {
				return nil, errors.Unavailable("image captioning is currently unavailable").
					WithDetails(chainErr.Failures).
					WithCause(err)
			}
			return nil, err
		}
		result.Description = caption.Caption
		result.Method = domain.MethodAI
		result.Model = caption.Provider
		result.Providers = caption.Attempts
	}

	result.Analysis = identify.Analyze(result.Description)
	result.Suggestions = identify.Rank(result.Analysis, result.Description)
	result.Duration = time.Since(start)

	s.record(ctx, result, clientIP)

	s.logger.Info("identification complete",
		"id", result.ID,
		"method", result.Method,
		"model", result.Model,
		"suggestions", len(result.Suggestions),
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

// History returns a page of past identifications, newest first.
func (s *IdentifyService) History(ctx context.Context, params store.ListParams) ([]*domain.Identification, int64, error) {
	return s.store.ListIdentifications(ctx, params)
}

// record persists the identification on a best-effort basis; a storage
// failure never fails the request.
func (s *IdentifyService) record(ctx context.Context, result *IdentifyResult, clientIP string) {
	ident := &domain.Identification{
		ID:          result.ID,
		Caption:     result.Description,
		Method:      result.Method,
		Model:       result.Model,
		Suggestions: len(result.Suggestions),
		ClientIP:    clientIP,
		DurationMs:  result.Duration.Milliseconds(),
		CreatedAt:   time.Now(),
	}
	if len(result.Suggestions) > 0 {
		ident.TopSuggestion = result.Suggestions[0].Title
		ident.Confidence = result.Suggestions[0].Confidence
	}

	if err := s.store.RecordIdentification(ctx, ident); err != nil {
		s.logger.Error("failed to record identification", "id", ident.ID, "error", err)
	}
}

// fallbackCaption turns an upload filename into analyzable text:
// "Silver-Foil_Heart.JPG" becomes "silver foil heart".
func fallbackCaption(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
