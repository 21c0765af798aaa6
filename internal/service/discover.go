package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/cinematicapp/cinematic-server/internal/catalog/tmdb"
	"github.com/cinematicapp/cinematic-server/internal/domain"
	domainerrors "github.com/cinematicapp/cinematic-server/internal/errors"
)

// Bucket names used in CategorySet diagnostics.
const (
	bucketTopPicks = "top_picks"
	bucketLatest   = "latest"
	bucketUpcoming = "upcoming"
	bucketTrending = "trending"
)

// DiscoveryService aggregates the movie catalog into preference-driven
// category buckets. Buckets are fetched concurrently and fail
// independently: a degraded bucket comes back empty with a recorded
// diagnostic, never an error for the whole set.
type DiscoveryService struct {
	catalog    MovieCatalog
	prefs      *PreferenceService
	bucketSize int
	logger     *slog.Logger

	// now is swappable for deterministic release-date tests.
	now func() time.Time
}

// NewDiscoveryService creates a new discovery service.
func NewDiscoveryService(
	catalog MovieCatalog,
	prefs *PreferenceService,
	bucketSize int,
	logger *slog.Logger,
) *DiscoveryService {
	return &DiscoveryService{
		catalog:    catalog,
		prefs:      prefs,
		bucketSize: bucketSize,
		logger:     logger,
		now:        time.Now,
	}
}

const releaseDateLayout = "2006-01-02"

// LoadCategories fetches all category buckets for the caller's resolved
// preferences. Hero selection runs only after every bucket has settled.
func (s *DiscoveryService) LoadCategories(ctx context.Context) (*domain.CategorySet, error) {
	prefs := s.prefs.Resolve(ctx)
	now := s.now()
	today := now.Format(releaseDateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(releaseDateLayout)

	genreID := 0
	if prefs.MovieGenre != "" {
		// Preference codes are validated against a closed set of
		// numeric catalog IDs, so this only fails for legacy data.
		if id, err := strconv.Atoi(prefs.MovieGenre); err == nil {
			genreID = id
		}
	}

	var (
		wg  sync.WaitGroup
		set domain.CategorySet
		mu  sync.Mutex
	)
	errs := make(map[string]string)

	fetch := func(name string, dst *[]domain.Movie, query func(context.Context) ([]domain.Movie, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			movies, err := query(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Warn("category bucket failed",
					"bucket", name,
					"error", err,
				)
				errs[name] = err.Error()
				*dst = []domain.Movie{}
				return
			}
			*dst = s.trim(movies)
		}()
	}

	fetch(bucketTopPicks, &set.TopPicks, func(ctx context.Context) ([]domain.Movie, error) {
		return s.catalog.Discover(ctx, tmdb.DiscoverParams{
			Language: prefs.MovieLanguage,
			GenreID:  genreID,
			SortBy:   "popularity.desc",
		})
	})
	fetch(bucketLatest, &set.Latest, func(ctx context.Context) ([]domain.Movie, error) {
		return s.catalog.Discover(ctx, tmdb.DiscoverParams{
			Language:       prefs.MovieLanguage,
			ReleasedBefore: today,
			SortBy:         "primary_release_date.desc",
		})
	})
	fetch(bucketUpcoming, &set.Upcoming, func(ctx context.Context) ([]domain.Movie, error) {
		return s.catalog.Discover(ctx, tmdb.DiscoverParams{
			Language:      prefs.MovieLanguage,
			ReleasedAfter: tomorrow,
			SortBy:        "popularity.desc",
		})
	})
	fetch(bucketTrending, &set.Trending, func(ctx context.Context) ([]domain.Movie, error) {
		return s.catalog.Trending(ctx)
	})

	wg.Wait()

	// Top picks only surface released titles.
	set.TopPicks = filterReleased(set.TopPicks, now)

	set.Hero = selectHero(&set)
	if len(errs) > 0 {
		set.Errors = errs
	}
	return &set, nil
}

// trim caps a bucket at the configured size.
func (s *DiscoveryService) trim(movies []domain.Movie) []domain.Movie {
	if s.bucketSize > 0 && len(movies) > s.bucketSize {
		return movies[:s.bucketSize]
	}
	return movies
}

// filterReleased drops titles without a release date or dated in the
// future.
func filterReleased(movies []domain.Movie, now time.Time) []domain.Movie {
	released := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if m.ReleasedBy(now) {
			released = append(released, m)
		}
	}
	return released
}

// selectHero picks the featured movie: first released top pick, else
// first trending or latest title, else the first item of any remaining
// non-empty bucket.
func selectHero(set *domain.CategorySet) *domain.Movie {
	for _, bucket := range [][]domain.Movie{set.TopPicks, set.Trending, set.Latest, set.Upcoming} {
		if len(bucket) > 0 {
			hero := bucket[0]
			return &hero
		}
	}
	return nil
}

// MovieDetails returns the full catalog record for one movie.
func (s *DiscoveryService) MovieDetails(ctx context.Context, movieID string) (*domain.Movie, error) {
	movie, err := s.catalog.Details(ctx, movieID)
	if err != nil {
		return nil, mapMovieCatalogError(err, "movie "+movieID)
	}
	return movie, nil
}

// maxCast caps the cast list returned with movie details.
const maxCast = 5

// MovieCredits returns the top-billed cast for one movie.
func (s *DiscoveryService) MovieCredits(ctx context.Context, movieID string) ([]domain.CastMember, error) {
	cast, err := s.catalog.Credits(ctx, movieID)
	if err != nil {
		return nil, mapMovieCatalogError(err, "credits for movie "+movieID)
	}
	if len(cast) > maxCast {
		cast = cast[:maxCast]
	}
	return cast, nil
}

// MovieProviders returns the streaming services carrying one movie in
// the configured region.
func (s *DiscoveryService) MovieProviders(ctx context.Context, movieID string) ([]domain.WatchProvider, error) {
	providers, err := s.catalog.Providers(ctx, movieID)
	if err != nil {
		return nil, mapMovieCatalogError(err, "providers for movie "+movieID)
	}
	return providers, nil
}

// mapMovieCatalogError converts catalog client sentinels to domain
// errors.
func mapMovieCatalogError(err error, subject string) error {
	switch {
	case errors.Is(err, tmdb.ErrNotFound):
		return domainerrors.NotFound(subject + " not found")
	case errors.Is(err, tmdb.ErrBadRequest):
		return domainerrors.Validation("invalid catalog request for " + subject)
	case errors.Is(err, tmdb.ErrMalformedPayload):
		return domainerrors.MalformedPayload("movie catalog returned an unusable record for " + subject)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return domainerrors.Upstream("movie catalog unavailable").WithCause(fmt.Errorf("%s: %w", subject, err))
	}
}
