// Package vision turns bead photos into text captions using hosted
// image-captioning models. Providers are tried in order until one returns a
// caption; per-provider failures are collected so the API can report why
// captioning was unavailable.
package vision

import (
	"context"
	"errors"
)

// Provider produces a caption for an image.
type Provider interface {
	// Name identifies the provider in logs and diagnostics.
	Name() string
	// Caption describes the image. The bytes are the raw encoded image.
	Caption(ctx context.Context, image []byte, contentType string) (string, error)
}

// ErrModelLoading reports that the hosted model is still warming up. The
// chain retries once after a short delay when it sees this.
var ErrModelLoading = errors.New("model is loading")

// Result is a successful caption with its origin. Attempts lists every
// provider tried, in order, including the one that succeeded.
type Result struct {
	Caption  string
	Provider string
	Attempts []string
}

// Failure records why one provider could not caption the image.
type Failure struct {
	Provider string `json:"provider"`
	Reason   string `json:"reason"`
}

// ChainError is returned when every provider failed.
type ChainError struct {
	Failures []Failure
}

func (e *ChainError) Error() string {
	return "all caption providers failed"
}
