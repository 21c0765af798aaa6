package service

import (
	"context"

	"github.com/cinematicapp/cinematic-server/internal/catalog/googlebooks"
	"github.com/cinematicapp/cinematic-server/internal/catalog/tmdb"
	"github.com/cinematicapp/cinematic-server/internal/domain"
)

// MovieCatalog is the read-only movie catalog collaborator.
// Satisfied by *tmdb.Client.
type MovieCatalog interface {
	Discover(ctx context.Context, params tmdb.DiscoverParams) ([]domain.Movie, error)
	Trending(ctx context.Context) ([]domain.Movie, error)
	Search(ctx context.Context, query string) ([]domain.Movie, error)
	Details(ctx context.Context, movieID string) (*domain.Movie, error)
	Credits(ctx context.Context, movieID string) ([]domain.CastMember, error)
	Providers(ctx context.Context, movieID string) ([]domain.WatchProvider, error)
}

// BookCatalog is the read-only book catalog collaborator.
// Satisfied by *googlebooks.Client.
type BookCatalog interface {
	Search(ctx context.Context, params googlebooks.SearchParams) ([]domain.Book, error)
	Volume(ctx context.Context, volumeID string) (*domain.Book, error)
}
