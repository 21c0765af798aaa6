package api

import (
	"context"
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinematicapp/cinematic-server/internal/catalog/googlebooks"
	"github.com/cinematicapp/cinematic-server/internal/catalog/tmdb"
	"github.com/cinematicapp/cinematic-server/internal/domain"
	"github.com/cinematicapp/cinematic-server/internal/media/images"
	"github.com/cinematicapp/cinematic-server/internal/service"
	"github.com/cinematicapp/cinematic-server/internal/sse"
	"github.com/cinematicapp/cinematic-server/internal/store"
	"github.com/cinematicapp/cinematic-server/internal/validation"
)

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// fakeMovieCatalog satisfies service.MovieCatalog with configurable responses.
type fakeMovieCatalog struct {
	discoverFn func(ctx context.Context, params tmdb.DiscoverParams) ([]domain.Movie, error)
	trendingFn func(ctx context.Context) ([]domain.Movie, error)
	searchFn   func(ctx context.Context, query string) ([]domain.Movie, error)
	detailsFn  func(ctx context.Context, movieID string) (*domain.Movie, error)
	creditsFn  func(ctx context.Context, movieID string) ([]domain.CastMember, error)
	providerFn func(ctx context.Context, movieID string) ([]domain.WatchProvider, error)
}

func (f *fakeMovieCatalog) Discover(ctx context.Context, params tmdb.DiscoverParams) ([]domain.Movie, error) {
	if f.discoverFn == nil {
		return nil, nil
	}
	return f.discoverFn(ctx, params)
}

func (f *fakeMovieCatalog) Trending(ctx context.Context) ([]domain.Movie, error) {
	if f.trendingFn == nil {
		return nil, nil
	}
	return f.trendingFn(ctx)
}

func (f *fakeMovieCatalog) Search(ctx context.Context, query string) ([]domain.Movie, error) {
	if f.searchFn == nil {
		return nil, nil
	}
	return f.searchFn(ctx, query)
}

func (f *fakeMovieCatalog) Details(ctx context.Context, movieID string) (*domain.Movie, error) {
	if f.detailsFn == nil {
		return nil, tmdb.ErrNotFound
	}
	return f.detailsFn(ctx, movieID)
}

func (f *fakeMovieCatalog) Credits(ctx context.Context, movieID string) ([]domain.CastMember, error) {
	if f.creditsFn == nil {
		return nil, nil
	}
	return f.creditsFn(ctx, movieID)
}

func (f *fakeMovieCatalog) Providers(ctx context.Context, movieID string) ([]domain.WatchProvider, error) {
	if f.providerFn == nil {
		return nil, nil
	}
	return f.providerFn(ctx, movieID)
}

// fakeBookCatalog satisfies service.BookCatalog with configurable responses.
type fakeBookCatalog struct {
	searchFn func(ctx context.Context, params googlebooks.SearchParams) ([]domain.Book, error)
	volumeFn func(ctx context.Context, volumeID string) (*domain.Book, error)
}

func (f *fakeBookCatalog) Search(ctx context.Context, params googlebooks.SearchParams) ([]domain.Book, error) {
	if f.searchFn == nil {
		return nil, nil
	}
	return f.searchFn(ctx, params)
}

func (f *fakeBookCatalog) Volume(ctx context.Context, volumeID string) (*domain.Book, error) {
	if f.volumeFn == nil {
		return nil, googlebooks.ErrNotFound
	}
	return f.volumeFn(ctx, volumeID)
}

// testServer wraps the API server with its humatest client and fakes.
type testServer struct {
	*Server
	api     humatest.TestAPI
	movies  *fakeMovieCatalog
	books   *fakeBookCatalog
	cleanup func()
}

// setupTestServer creates a test server with all dependencies backed by
// a temp database and fake catalogs.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "cinematic-api-test-*")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sseManager := sse.NewManager(logger)
	sseHandler := sse.NewHandler(sseManager, logger)

	st, err := store.New(tmpDir+"/test.db", logger, sseManager)
	require.NoError(t, err)

	imageStorage, err := images.NewStorage(tmpDir)
	require.NoError(t, err)
	processor := images.NewProcessor(imageStorage, logger)

	validator := validation.New()

	movies := &fakeMovieCatalog{}
	books := &fakeBookCatalog{}

	identity := service.NewIdentityService(st, processor, validator, sseManager, logger)
	prefs := service.NewPreferenceService(st, identity, validator, logger)
	saved := service.NewSavedService(st, identity, logger)
	discovery := service.NewDiscoveryService(movies, prefs, 20, logger)
	searcher := service.NewMovieSearcher(movies, 10*time.Millisecond, 3, logger)
	recommend := service.NewRecommendService(books, logger)

	services := &Services{
		Identity:  identity,
		Prefs:     prefs,
		Saved:     saved,
		Discovery: discovery,
		Search:    searcher,
		Recommend: recommend,
	}

	server := NewServer(st, services, sseHandler, logger)

	cleanup := func() {
		identity.WaitForUploads()
		_ = st.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return &testServer{
		Server:  server,
		api:     humatest.Wrap(t, server.api),
		movies:  movies,
		books:   books,
		cleanup: cleanup,
	}
}

// signIn registers an account through the API and returns its session.
func (ts *testServer) signIn(t *testing.T, username string) SessionResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"username": username,
		"secret":   "opensesame",
	})
	require.Equal(t, http.StatusOK, resp.Code, "register failed: %s", resp.Body.String())

	var envelope testEnvelope[SessionResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[HealthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, 1, envelope.V)
	assert.True(t, envelope.Success)
	assert.Equal(t, "healthy", envelope.Data.Status)
	assert.Contains(t, envelope.Data.Components, "database")
	assert.Contains(t, envelope.Data.Components, "events")
}
