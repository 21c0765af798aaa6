// Package di provides dependency injection configuration for the Cinematic server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/cinematicapp/cinematic-server/internal/config"
	"github.com/cinematicapp/cinematic-server/internal/di/providers"
	"github.com/cinematicapp/cinematic-server/internal/logger"
	"github.com/cinematicapp/cinematic-server/internal/media/images"
	"github.com/cinematicapp/cinematic-server/internal/service"
	"github.com/cinematicapp/cinematic-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)

	// Storage layer
	do.Provide(injector, providers.ProvideImageStorage)
	do.Provide(injector, providers.ProvideImageProcessor)

	// Catalog layer
	do.Provide(injector, providers.ProvideTMDBClient)
	do.Provide(injector, providers.ProvideGoogleBooksClient)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideIdentityService)
	do.Provide(injector, providers.ProvidePreferenceService)
	do.Provide(injector, providers.ProvideSavedService)
	do.Provide(injector, providers.ProvideDiscoveryService)
	do.Provide(injector, providers.ProvideMovieSearcher)
	do.Provide(injector, providers.ProvideRecommendService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*images.Storage](injector)
	_ = do.MustInvoke[*images.Processor](injector)
	_ = do.MustInvoke[*providers.TMDBClientHandle](injector)
	_ = do.MustInvoke[*providers.GoogleBooksClientHandle](injector)

	// Business services
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*service.IdentityService](injector)
	_ = do.MustInvoke[*service.PreferenceService](injector)
	_ = do.MustInvoke[*service.SavedService](injector)
	_ = do.MustInvoke[*service.DiscoveryService](injector)
	_ = do.MustInvoke[*service.MovieSearcher](injector)
	_ = do.MustInvoke[*service.RecommendService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
