package providers

import (
	"github.com/samber/do/v2"

	"github.com/beadfanatic/server/internal/config"
	"github.com/beadfanatic/server/internal/logger"
	"github.com/beadfanatic/server/internal/search"
)

// SearchIndexHandle wraps the bleve index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the content search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	idx, err := search.Open(cfg.IndexPath(), log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Search index opened", "path", cfg.IndexPath())
	return &SearchIndexHandle{Index: idx}, nil
}
