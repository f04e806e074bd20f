package providers

import (
	"github.com/samber/do/v2"

	"github.com/beadfanatic/server/internal/config"
	"github.com/beadfanatic/server/internal/logger"
	"github.com/beadfanatic/server/internal/ratelimit"
	"github.com/beadfanatic/server/internal/vision"
)

// VisionHandle wraps the captioning chain together with the outbound rate
// limiter that throttles calls to the Hugging Face inference API.
type VisionHandle struct {
	*vision.Chain
	limiter *ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *VisionHandle) Shutdown() error {
	h.limiter.Stop()
	return nil
}

// ProvideVisionChain provides the image captioning fallback chain. When no
// API key is configured the chain is empty and identification falls back to
// filename keywords.
func ProvideVisionChain(i do.Injector) (*VisionHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	limiter := ratelimit.New(cfg.Vision.OutboundRPS, cfg.Vision.OutboundBurst)

	var providers []vision.Provider
	if cfg.Vision.HuggingFaceKey != "" {
		for _, model := range []string{
			vision.ModelBLIPLarge,
			vision.ModelBLIPBase,
			vision.ModelViTGPT2,
		} {
			providers = append(providers, vision.NewHuggingFace(
				cfg.Vision.HuggingFaceKey, model, cfg.Vision.Timeout, limiter, log.Logger))
		}
		log.Info("Vision captioning enabled", "providers", len(providers))
	} else {
		log.Warn("No Hugging Face API key configured, identification will use filename fallback")
	}

	chain := vision.NewChain(providers, cfg.Vision.RetryDelay, log.Logger)
	return &VisionHandle{Chain: chain, limiter: limiter}, nil
}
