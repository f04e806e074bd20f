package vision

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/beadfanatic/server/internal/ratelimit"
)

const defaultInferenceBaseURL = "https://api-inference.huggingface.co/models"

// Caption models tried against the Hugging Face inference API, in order of
// caption quality for product photos.
const (
	ModelBLIPLarge = "Salesforce/blip-image-captioning-large"
	ModelBLIPBase  = "Salesforce/blip-image-captioning-base"
	ModelViTGPT2   = "nlpconnect/vit-gpt2-image-captioning"
)

// HuggingFace captions images through the hosted inference API.
type HuggingFace struct {
	httpClient *http.Client
	limiter    *ratelimit.KeyedRateLimiter
	logger     *slog.Logger
	apiKey     string
	baseURL    string
	model      string
}

// HuggingFaceOption configures the adapter.
type HuggingFaceOption func(*HuggingFace)

// WithBaseURL overrides the inference API base URL. Used by tests.
func WithBaseURL(baseURL string) HuggingFaceOption {
	return func(h *HuggingFace) {
		h.baseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) HuggingFaceOption {
	return func(h *HuggingFace) {
		h.httpClient = client
	}
}

// NewHuggingFace creates an adapter for one model. The limiter paces
// outbound calls and is shared across adapters so the API key's quota is
// respected regardless of which model answers.
func NewHuggingFace(apiKey, model string, timeout time.Duration, limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger, opts ...HuggingFaceOption) *HuggingFace {
	h := &HuggingFace{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		logger:     logger,
		apiKey:     apiKey,
		baseURL:    defaultInferenceBaseURL,
		model:      model,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name implements Provider.
func (h *HuggingFace) Name() string {
	return "huggingface/" + h.model
}

// Caption implements Provider. It sends the raw image bytes and returns the
// first generated caption. A 503 with a loading estimate maps to
// ErrModelLoading so the chain can retry.
func (h *HuggingFace) Caption(ctx context.Context, image []byte, contentType string) (string, error) {
	if h.apiKey == "" {
		return "", fmt.Errorf("no API key configured")
	}
	if err := h.limiter.Wait(ctx, "huggingface"); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	endpoint := h.baseURL + "/" + h.model

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(image))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+h.apiKey)
	req.Header.Set("Content-Type", contentType)

	h.logger.Debug("captioning image", "model", h.model, "bytes", len(image))

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("caption request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusServiceUnavailable {
		var loading struct {
			Error         string  `json:"error"`
			EstimatedTime float64 `json:"estimated_time"`
		}
		if err := json.Unmarshal(body, &loading); err == nil && loading.EstimatedTime > 0 {
			h.logger.Debug("model loading", "model", h.model, "estimated_s", loading.EstimatedTime)
			return "", ErrModelLoading
		}
		return "", fmt.Errorf("inference unavailable: status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("caption failed: status %d", resp.StatusCode)
	}

	var results []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(results) == 0 || results[0].GeneratedText == "" {
		return "", fmt.Errorf("empty caption")
	}
	return results[0].GeneratedText, nil
}
