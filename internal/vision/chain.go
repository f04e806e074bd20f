package vision

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Chain tries providers in order and returns the first caption. A provider
// whose model is still loading gets exactly one retry after retryDelay
// before the chain moves on.
type Chain struct {
	providers  []Provider
	logger     *slog.Logger
	retryDelay time.Duration
}

// NewChain creates a provider chain.
func NewChain(providers []Provider, retryDelay time.Duration, logger *slog.Logger) *Chain {
	return &Chain{providers: providers, logger: logger, retryDelay: retryDelay}
}

// Empty reports whether the chain has no providers at all.
func (c *Chain) Empty() bool {
	return len(c.providers) == 0
}

// Caption runs the chain. On success it returns the caption and the name of
// the provider that produced it. When every provider fails it returns a
// *ChainError listing each failure.
func (c *Chain) Caption(ctx context.Context, image []byte, contentType string) (*Result, error) {
	failures := make([]Failure, 0, len(c.providers))
	attempts := make([]string, 0, len(c.providers))

	for _, p := range c.providers {
		attempts = append(attempts, p.Name())

		caption, err := c.captionOnce(ctx, p, image, contentType)
		if err == nil {
			c.logger.Info("image captioned", "provider", p.Name())
			return &Result{Caption: caption, Provider: p.Name(), Attempts: attempts}, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		c.logger.Warn("caption provider failed", "provider", p.Name(), "error", err)
		failures = append(failures, Failure{Provider: p.Name(), Reason: err.Error()})
	}

	return nil, &ChainError{Failures: failures}
}

func (c *Chain) captionOnce(ctx context.Context, p Provider, image []byte, contentType string) (string, error) {
	caption, err := p.Caption(ctx, image, contentType)
	if !errors.Is(err, ErrModelLoading) {
		return caption, err
	}

	// One retry: cold models usually finish loading within a few seconds.
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(c.retryDelay):
	}
	return p.Caption(ctx, image, contentType)
}
