package api

import (
	"context"
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinematicapp/cinematic-server/internal/catalog/tmdb"
	"github.com/cinematicapp/cinematic-server/internal/domain"
	domainerrors "github.com/cinematicapp/cinematic-server/internal/errors"
)

func moviesNamed(ids ...string) []domain.Movie {
	movies := make([]domain.Movie, 0, len(ids))
	for _, id := range ids {
		movies = append(movies, domain.Movie{ID: id, Title: "Movie " + id, ReleaseDate: "2001-01-01"})
	}
	return movies
}

func TestDiscoverMovies(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.movies.discoverFn = func(_ context.Context, params tmdb.DiscoverParams) ([]domain.Movie, error) {
		switch {
		case params.ReleasedBefore != "":
			return moviesNamed("latest-1"), nil
		case params.ReleasedAfter != "":
			return moviesNamed("upcoming-1"), nil
		default:
			return moviesNamed("top-1", "top-2"), nil
		}
	}
	ts.movies.trendingFn = func(_ context.Context) ([]domain.Movie, error) {
		return moviesNamed("trending-1"), nil
	}

	resp := ts.api.Get("/api/v1/discover/movies")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[domain.CategorySet]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	set := envelope.Data
	assert.Len(t, set.TopPicks, 2)
	assert.Len(t, set.Latest, 1)
	assert.Len(t, set.Upcoming, 1)
	assert.Len(t, set.Trending, 1)
	require.NotNil(t, set.Hero)
	assert.Equal(t, "top-1", set.Hero.ID)
	assert.Empty(t, set.Errors)
}

func TestDiscoverMovies_BucketFailureDegrades(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.movies.discoverFn = func(_ context.Context, params tmdb.DiscoverParams) ([]domain.Movie, error) {
		if params.ReleasedBefore != "" {
			return nil, domainerrors.Upstream("movie catalog unavailable")
		}
		return moviesNamed("top-1"), nil
	}
	ts.movies.trendingFn = func(_ context.Context) ([]domain.Movie, error) {
		return moviesNamed("trending-1"), nil
	}

	resp := ts.api.Get("/api/v1/discover/movies")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[domain.CategorySet]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	set := envelope.Data
	assert.Empty(t, set.Latest)
	assert.Len(t, set.TopPicks, 1)
	assert.Contains(t, set.Errors, "latest")
}

func TestSearchMovies(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.movies.searchFn = func(_ context.Context, query string) ([]domain.Movie, error) {
		assert.Equal(t, "the matrix", query)
		return moviesNamed("603"), nil
	}

	resp := ts.api.Get("/api/v1/discover/movies/search?q=" + "the%20%20matrix")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[SearchMoviesResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, "the matrix", envelope.Data.Query)
	require.Len(t, envelope.Data.Results, 1)
	assert.Equal(t, "603", envelope.Data.Results[0].ID)
	assert.False(t, envelope.Data.Superseded)
}

func TestSearchMovies_ShortQueryRejected(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/discover/movies/search?q=ab")
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION", envelope.Code)
}

func TestSearchMovies_UpstreamFailure(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.movies.searchFn = func(_ context.Context, _ string) ([]domain.Movie, error) {
		return nil, tmdb.ErrServer
	}

	resp := ts.api.Get("/api/v1/discover/movies/search?q=batman")
	assert.Equal(t, http.StatusBadGateway, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", envelope.Code)
}
