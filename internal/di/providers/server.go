package providers

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/beadfanatic/server/internal/api"
	"github.com/beadfanatic/server/internal/auth"
	"github.com/beadfanatic/server/internal/config"
	"github.com/beadfanatic/server/internal/logger"
	"github.com/beadfanatic/server/internal/service"
)

// HTTPServerHandle wraps the HTTP server with graceful shutdown.
type HTTPServerHandle struct {
	server    *http.Server
	apiServer *api.Server
	logger    *logger.Logger
}

// Shutdown implements do.Shutdownable, draining in-flight requests before
// closing down.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := h.server.Shutdown(ctx)
	h.apiServer.Close()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ProvideHTTPServer builds the API server and starts listening.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	identifySvc := do.MustInvoke[*service.IdentifyService](i)
	contentSvc := do.MustInvoke[*service.ContentService](i)
	tokens := do.MustInvoke[*auth.TokenService](i)

	apiServer := api.NewServer(cfg, identifySvc, contentSvc, tokens, log.Logger)

	srv := &http.Server{
		Addr:         net.JoinHostPort("", cfg.Server.Port),
		Handler:      apiServer,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", "error", err)
		}
	}()

	return &HTTPServerHandle{server: srv, apiServer: apiServer, logger: log}, nil
}
