package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cinematicapp/cinematic-server/internal/catalog/googlebooks"
	"github.com/cinematicapp/cinematic-server/internal/catalog/tmdb"
	"github.com/cinematicapp/cinematic-server/internal/domain"
	"github.com/cinematicapp/cinematic-server/internal/media/images"
	"github.com/cinematicapp/cinematic-server/internal/sse"
	"github.com/cinematicapp/cinematic-server/internal/store"
	"github.com/cinematicapp/cinematic-server/internal/validation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// captureEmitter records emitted events for assertions.
type captureEmitter struct {
	mu     sync.Mutex
	events []any
}

func (e *captureEmitter) Emit(event any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
}

func (e *captureEmitter) sessionEvents() []sse.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []sse.Event
	for _, raw := range e.events {
		if ev, ok := raw.(sse.Event); ok && ev.Type == sse.EventSessionUpdated {
			out = append(out, ev)
		}
	}
	return out
}

// fakeMovieCatalog stubs the movie catalog collaborator.
type fakeMovieCatalog struct {
	mu sync.Mutex

	discoverFn func(tmdb.DiscoverParams) ([]domain.Movie, error)
	trendingFn func() ([]domain.Movie, error)
	searchFn   func(string) ([]domain.Movie, error)
	detailsFn  func(string) (*domain.Movie, error)
	creditsFn  func(string) ([]domain.CastMember, error)
	providerFn func(string) ([]domain.WatchProvider, error)

	searchQueries []string
}

func (f *fakeMovieCatalog) Discover(_ context.Context, params tmdb.DiscoverParams) ([]domain.Movie, error) {
	if f.discoverFn == nil {
		return nil, nil
	}
	return f.discoverFn(params)
}

func (f *fakeMovieCatalog) Trending(_ context.Context) ([]domain.Movie, error) {
	if f.trendingFn == nil {
		return nil, nil
	}
	return f.trendingFn()
}

func (f *fakeMovieCatalog) Search(_ context.Context, query string) ([]domain.Movie, error) {
	f.mu.Lock()
	f.searchQueries = append(f.searchQueries, query)
	f.mu.Unlock()
	if f.searchFn == nil {
		return nil, nil
	}
	return f.searchFn(query)
}

func (f *fakeMovieCatalog) Details(_ context.Context, movieID string) (*domain.Movie, error) {
	if f.detailsFn == nil {
		return &domain.Movie{ID: movieID}, nil
	}
	return f.detailsFn(movieID)
}

func (f *fakeMovieCatalog) Credits(_ context.Context, movieID string) ([]domain.CastMember, error) {
	if f.creditsFn == nil {
		return nil, nil
	}
	return f.creditsFn(movieID)
}

func (f *fakeMovieCatalog) Providers(_ context.Context, movieID string) ([]domain.WatchProvider, error) {
	if f.providerFn == nil {
		return nil, nil
	}
	return f.providerFn(movieID)
}

func (f *fakeMovieCatalog) searchCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searchQueries...)
}

// fakeBookCatalog stubs the book catalog collaborator.
type fakeBookCatalog struct {
	mu sync.Mutex

	searchFn func(googlebooks.SearchParams) ([]domain.Book, error)
	volumeFn func(string) (*domain.Book, error)

	searchParams []googlebooks.SearchParams
}

func (f *fakeBookCatalog) Search(_ context.Context, params googlebooks.SearchParams) ([]domain.Book, error) {
	f.mu.Lock()
	f.searchParams = append(f.searchParams, params)
	f.mu.Unlock()
	if f.searchFn == nil {
		return nil, nil
	}
	return f.searchFn(params)
}

func (f *fakeBookCatalog) Volume(_ context.Context, volumeID string) (*domain.Book, error) {
	if f.volumeFn == nil {
		return &domain.Book{ID: volumeID}, nil
	}
	return f.volumeFn(volumeID)
}

func (f *fakeBookCatalog) searchCalls() []googlebooks.SearchParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]googlebooks.SearchParams(nil), f.searchParams...)
}

// setupIdentityTest wires an identity service over temporary storage.
func setupIdentityTest(t *testing.T) (*IdentityService, *store.Store, *captureEmitter, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "cinematic-service-test-*")
	require.NoError(t, err)

	s, err := store.New(filepath.Join(tmpDir, "test.db"), nil, store.NewNoopEmitter())
	require.NoError(t, err)

	photoStorage, err := images.NewStorage(tmpDir)
	require.NoError(t, err)
	processor := images.NewProcessor(photoStorage, testLogger())

	emitter := &captureEmitter{}
	identity := NewIdentityService(s, processor, validation.New(), emitter, testLogger())

	cleanup := func() {
		identity.WaitForUploads()
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return identity, s, emitter, cleanup
}
