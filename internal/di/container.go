// Package di provides dependency injection configuration for the BeadFanatic server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/beadfanatic/server/internal/auth"
	"github.com/beadfanatic/server/internal/config"
	"github.com/beadfanatic/server/internal/di/providers"
	"github.com/beadfanatic/server/internal/logger"
	"github.com/beadfanatic/server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)
	do.Provide(injector, providers.ProvideTokenService)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSearchIndex)

	// Content catalogue
	do.Provide(injector, providers.ProvideContentService)
	do.Provide(injector, providers.ProvideContentWatcher)

	// Identification pipeline
	do.Provide(injector, providers.ProvideVisionChain)
	do.Provide(injector, providers.ProvideIdentifyService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*service.ContentService](injector)
	_ = do.MustInvoke[*providers.WatcherHandle](injector)
	_ = do.MustInvoke[*providers.VisionHandle](injector)
	_ = do.MustInvoke[*service.IdentifyService](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
