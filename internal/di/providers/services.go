package providers

import (
	"github.com/samber/do/v2"

	"github.com/cinematicapp/cinematic-server/internal/config"
	"github.com/cinematicapp/cinematic-server/internal/logger"
	"github.com/cinematicapp/cinematic-server/internal/media/images"
	"github.com/cinematicapp/cinematic-server/internal/service"
	"github.com/cinematicapp/cinematic-server/internal/validation"
)

// ProvideValidator provides the struct validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideIdentityService provides the local identity service.
func ProvideIdentityService(i do.Injector) (*service.IdentityService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	processor := do.MustInvoke[*images.Processor](i)
	validator := do.MustInvoke[*validation.Validator](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewIdentityService(
		storeHandle.Store,
		processor,
		validator,
		sseHandle.Manager,
		log.Logger,
	), nil
}

// ProvidePreferenceService provides the preference resolution service.
func ProvidePreferenceService(i do.Injector) (*service.PreferenceService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	identityService := do.MustInvoke[*service.IdentityService](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPreferenceService(storeHandle.Store, identityService, validator, log.Logger), nil
}

// ProvideSavedService provides the watchlist and read-later service.
func ProvideSavedService(i do.Injector) (*service.SavedService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	identityService := do.MustInvoke[*service.IdentityService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSavedService(storeHandle.Store, identityService, log.Logger), nil
}

// ProvideDiscoveryService provides the movie category aggregation service.
func ProvideDiscoveryService(i do.Injector) (*service.DiscoveryService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	tmdbHandle := do.MustInvoke[*TMDBClientHandle](i)
	prefsService := do.MustInvoke[*service.PreferenceService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDiscoveryService(
		tmdbHandle.Client,
		prefsService,
		cfg.Discovery.BucketSize,
		log.Logger,
	), nil
}

// ProvideMovieSearcher provides the debounced movie search service.
func ProvideMovieSearcher(i do.Injector) (*service.MovieSearcher, error) {
	cfg := do.MustInvoke[*config.Config](i)
	tmdbHandle := do.MustInvoke[*TMDBClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewMovieSearcher(
		tmdbHandle.Client,
		cfg.Discovery.DebounceInterval,
		cfg.Discovery.MinQueryLength,
		log.Logger,
	), nil
}

// ProvideRecommendService provides the movie-to-book recommendation service.
func ProvideRecommendService(i do.Injector) (*service.RecommendService, error) {
	booksHandle := do.MustInvoke[*GoogleBooksClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRecommendService(booksHandle.Client, log.Logger), nil
}
