package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinematicapp/cinematic-server/internal/domain"
	"github.com/cinematicapp/cinematic-server/internal/service"
)

func (s *Server) registerDiscoverRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "discoverMovies",
		Method:      http.MethodGet,
		Path:        "/api/v1/discover/movies",
		Summary:     "Load the movie landing page",
		Description: "Fetches the category buckets in parallel and picks the hero title. Failed buckets come back empty with a diagnostic instead of failing the page.",
		Tags:        []string{"Discovery"},
	}, s.handleDiscoverMovies)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchMovies",
		Method:      http.MethodGet,
		Path:        "/api/v1/discover/movies/search",
		Summary:     "Search movies",
		Description: "Debounced free-text search. A request superseded by a newer query resolves with superseded=true and no results.",
		Tags:        []string{"Discovery"},
	}, s.handleSearchMovies)
}

// === DTOs ===

// DiscoverOutput wraps the category set for Huma.
type DiscoverOutput struct {
	Body domain.CategorySet
}

// SearchMoviesInput contains the search query.
type SearchMoviesInput struct {
	Query string `query:"q" doc:"Free-text movie query, minimum length applies after whitespace normalization"`
}

// SearchMoviesResponse contains settled search results.
type SearchMoviesResponse struct {
	Query      string         `json:"query" doc:"Normalized query that was dispatched"`
	Results    []domain.Movie `json:"results" doc:"Matching movies"`
	Superseded bool           `json:"superseded,omitempty" doc:"True when a newer query replaced this one before dispatch"`
}

// SearchMoviesOutput wraps the search response for Huma.
type SearchMoviesOutput struct {
	Body SearchMoviesResponse
}

// === Handlers ===

func (s *Server) handleDiscoverMovies(ctx context.Context, _ *struct{}) (*DiscoverOutput, error) {
	set, err := s.services.Discovery.LoadCategories(ctx)
	if err != nil {
		return nil, err
	}
	return &DiscoverOutput{Body: *set}, nil
}

func (s *Server) handleSearchMovies(ctx context.Context, input *SearchMoviesInput) (*SearchMoviesOutput, error) {
	outcomes := make(chan service.SearchOutcome, 1)
	err := s.services.Search.Submit(ctx, input.Query, func(o service.SearchOutcome) {
		outcomes <- o
	})
	if err != nil {
		return nil, err
	}

	select {
	case o := <-outcomes:
		if o.Err != nil {
			return nil, o.Err
		}
		if o.Superseded {
			return &SearchMoviesOutput{
				Body: SearchMoviesResponse{Query: o.Query, Results: []domain.Movie{}, Superseded: true},
			}, nil
		}
		results := o.Movies
		if results == nil {
			results = []domain.Movie{}
		}
		return &SearchMoviesOutput{
			Body: SearchMoviesResponse{Query: o.Query, Results: results},
		}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
