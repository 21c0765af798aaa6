package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinematicapp/cinematic-server/internal/catalog/googlebooks"
	"github.com/cinematicapp/cinematic-server/internal/domain"
	domainerrors "github.com/cinematicapp/cinematic-server/internal/errors"
)

func TestRecommendService_QueriesFromGenresAndOverview(t *testing.T) {
	catalog := &fakeBookCatalog{
		searchFn: func(params googlebooks.SearchParams) ([]domain.Book, error) {
			return []domain.Book{{ID: "b1", Title: "Match for " + params.Query}}, nil
		},
	}
	svc := NewRecommendService(catalog, testLogger())

	movie := &domain.Movie{
		ID:       "603",
		Title:    "The Matrix",
		Overview: "A computer hacker learns from mysterious rebels about the true nature of his reality.",
		Genres: []domain.Genre{
			{ID: 28, Name: "Action"},
			{ID: 878, Name: "Science Fiction"},
		},
	}

	recs := svc.BooksForMovie(context.Background(), movie)
	require.Len(t, recs.ByGenre, 1)
	require.Len(t, recs.ByDescription, 1)
	assert.Empty(t, recs.Errors)

	queries := map[string]bool{}
	for _, p := range catalog.searchCalls() {
		queries[p.Query] = true
	}
	assert.True(t, queries["subject:Action Science Fiction"], "genre query: %v", queries)
	assert.True(t, queries["A computer hacker learns from mysterious"], "description query: %v", queries)
}

func TestRecommendService_FallbacksForSparseMovie(t *testing.T) {
	catalog := &fakeBookCatalog{}
	svc := NewRecommendService(catalog, testLogger())

	movie := &domain.Movie{
		ID:       "900",
		Title:    "Quiet Town",
		Overview: "A quiet town hides a secret",
	}

	svc.BooksForMovie(context.Background(), movie)

	queries := map[string]bool{}
	for _, p := range catalog.searchCalls() {
		queries[p.Query] = true
	}
	// No genres: default genre fallback
	assert.True(t, queries["subject:Fiction"], "queries: %v", queries)
	// Six-word synopsis passes through whole
	assert.True(t, queries["A quiet town hides a secret"], "queries: %v", queries)
}

func TestRecommendService_TitleFallbackWithoutOverview(t *testing.T) {
	catalog := &fakeBookCatalog{}
	svc := NewRecommendService(catalog, testLogger())

	svc.BooksForMovie(context.Background(), &domain.Movie{ID: "1", Title: "Enthiran"})

	queries := map[string]bool{}
	for _, p := range catalog.searchCalls() {
		queries[p.Query] = true
	}
	assert.True(t, queries["Enthiran"], "queries: %v", queries)
}

func TestRecommendService_BucketsDegradeIndependently(t *testing.T) {
	catalog := &fakeBookCatalog{
		searchFn: func(params googlebooks.SearchParams) ([]domain.Book, error) {
			if params.Query == "subject:Fiction" {
				return nil, errors.New("quota exhausted")
			}
			return []domain.Book{{ID: "b1", Title: "Still Works"}}, nil
		},
	}
	svc := NewRecommendService(catalog, testLogger())

	recs := svc.BooksForMovie(context.Background(), &domain.Movie{
		ID:       "1",
		Title:    "Quiet Town",
		Overview: "A quiet town hides a secret",
	})

	assert.Empty(t, recs.ByGenre)
	require.Len(t, recs.ByDescription, 1)
	require.Contains(t, recs.Errors, "by_genre")
	assert.Contains(t, recs.Errors["by_genre"], "quota exhausted")
}

func TestRecommendService_BookDetailsMapsNotFound(t *testing.T) {
	catalog := &fakeBookCatalog{
		volumeFn: func(string) (*domain.Book, error) {
			return nil, googlebooks.ErrNotFound
		},
	}
	svc := NewRecommendService(catalog, testLogger())

	_, err := svc.BookDetails(context.Background(), "missing")
	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeNotFound, domainErr.Code)
}

func TestRecommendService_SearchBooksMapsUpstreamFailure(t *testing.T) {
	catalog := &fakeBookCatalog{
		searchFn: func(googlebooks.SearchParams) ([]domain.Book, error) {
			return nil, googlebooks.ErrServer
		},
	}
	svc := NewRecommendService(catalog, testLogger())

	_, err := svc.SearchBooks(context.Background(), googlebooks.SearchParams{Query: "dune"})
	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeUpstreamUnavailable, domainErr.Code)
}
