package providers

import (
	"github.com/samber/do/v2"

	"github.com/cinematicapp/cinematic-server/internal/catalog/googlebooks"
	"github.com/cinematicapp/cinematic-server/internal/catalog/tmdb"
	"github.com/cinematicapp/cinematic-server/internal/config"
	"github.com/cinematicapp/cinematic-server/internal/logger"
)

// TMDBClientHandle wraps the TMDB client with shutdown capability.
type TMDBClientHandle struct {
	*tmdb.Client
}

// Shutdown implements do.Shutdownable.
func (h *TMDBClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideTMDBClient provides the movie catalog client.
func ProvideTMDBClient(i do.Injector) (*TMDBClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.TMDB.APIKey == "" {
		log.Warn("TMDB API key not configured, movie catalog requests will fail upstream")
	}

	client := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.Region, log.Logger)

	return &TMDBClientHandle{Client: client}, nil
}

// GoogleBooksClientHandle wraps the Google Books client with shutdown capability.
type GoogleBooksClientHandle struct {
	*googlebooks.Client
}

// Shutdown implements do.Shutdownable.
func (h *GoogleBooksClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideGoogleBooksClient provides the book catalog client.
func ProvideGoogleBooksClient(i do.Injector) (*GoogleBooksClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	// The volumes API works without a key at a lower quota.
	client := googlebooks.New(cfg.Books.APIKey, log.Logger)

	return &GoogleBooksClientHandle{Client: client}, nil
}
