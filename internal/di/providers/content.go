package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/beadfanatic/server/internal/config"
	"github.com/beadfanatic/server/internal/content"
	"github.com/beadfanatic/server/internal/logger"
	"github.com/beadfanatic/server/internal/service"
	"github.com/beadfanatic/server/internal/validation"
)

// ProvideContentService provides the content catalogue service with the
// catalogue loaded and indexed.
func ProvideContentService(i do.Injector) (*service.ContentService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	idx := do.MustInvoke[*SearchIndexHandle](i)

	loader := content.NewLoader(cfg.Content.Dir, validation.New(), log.Logger)
	svc := service.NewContentService(loader, idx.Index, log.Logger)

	if err := svc.Load(context.Background()); err != nil {
		return nil, err
	}
	return svc, nil
}

// WatcherHandle owns the content file watcher goroutine.
type WatcherHandle struct {
	watcher *content.Watcher
	cancel  context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *WatcherHandle) Shutdown() error {
	if h.watcher == nil {
		return nil
	}
	h.cancel()
	return h.watcher.Close()
}

// ProvideContentWatcher starts the filesystem watcher that reloads the
// catalogue on changes. Disabled when watching is turned off in config.
func ProvideContentWatcher(i do.Injector) (*WatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	svc := do.MustInvoke[*service.ContentService](i)

	if !cfg.Content.Watch || cfg.Content.Dir == "" {
		return &WatcherHandle{}, nil
	}

	watcher, err := content.NewWatcher(cfg.Content.Dir, svc.Reload, log.Logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go watcher.Run(ctx)

	log.Info("Content watcher started", "dir", cfg.Content.Dir)
	return &WatcherHandle{watcher: watcher, cancel: cancel}, nil
}
