package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinematicapp/cinematic-server/internal/domain"
)

func (s *Server) registerMovieRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getMovie",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/{id}",
		Summary:     "Get movie details",
		Tags:        []string{"Movies"},
	}, s.handleGetMovie)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMovieCredits",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/{id}/credits",
		Summary:     "Get top-billed cast",
		Description: "Returns the leading cast members in billing order",
		Tags:        []string{"Movies"},
	}, s.handleGetMovieCredits)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMovieProviders",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/{id}/providers",
		Summary:     "Get streaming providers",
		Description: "Returns flat-rate streaming providers for the configured region",
		Tags:        []string{"Movies"},
	}, s.handleGetMovieProviders)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMovieBookRecommendations",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/{id}/recommendations/books",
		Summary:     "Get book recommendations",
		Description: "Derives two book buckets from the movie: one by genre, one by plot description. Buckets degrade independently.",
		Tags:        []string{"Movies"},
	}, s.handleGetMovieBookRecommendations)
}

// === DTOs ===

// MovieIDInput identifies one movie.
type MovieIDInput struct {
	ID string `path:"id" doc:"Movie catalog ID"`
}

// MovieOutput wraps movie details for Huma.
type MovieOutput struct {
	Body domain.Movie
}

// CreditsResponse contains the top-billed cast.
type CreditsResponse struct {
	Cast []domain.CastMember `json:"cast" doc:"Leading cast members in billing order"`
}

// CreditsOutput wraps the credits response for Huma.
type CreditsOutput struct {
	Body CreditsResponse
}

// ProvidersResponse contains the region's streaming providers.
type ProvidersResponse struct {
	Providers []domain.WatchProvider `json:"providers" doc:"Flat-rate streaming providers"`
}

// ProvidersOutput wraps the providers response for Huma.
type ProvidersOutput struct {
	Body ProvidersResponse
}

// RecommendationsOutput wraps book recommendations for Huma.
type RecommendationsOutput struct {
	Body domain.BookRecommendations
}

// === Handlers ===

func (s *Server) handleGetMovie(ctx context.Context, input *MovieIDInput) (*MovieOutput, error) {
	movie, err := s.services.Discovery.MovieDetails(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &MovieOutput{Body: *movie}, nil
}

func (s *Server) handleGetMovieCredits(ctx context.Context, input *MovieIDInput) (*CreditsOutput, error) {
	cast, err := s.services.Discovery.MovieCredits(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if cast == nil {
		cast = []domain.CastMember{}
	}
	return &CreditsOutput{Body: CreditsResponse{Cast: cast}}, nil
}

func (s *Server) handleGetMovieProviders(ctx context.Context, input *MovieIDInput) (*ProvidersOutput, error) {
	providers, err := s.services.Discovery.MovieProviders(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if providers == nil {
		providers = []domain.WatchProvider{}
	}
	return &ProvidersOutput{Body: ProvidersResponse{Providers: providers}}, nil
}

func (s *Server) handleGetMovieBookRecommendations(ctx context.Context, input *MovieIDInput) (*RecommendationsOutput, error) {
	// Recommendations derive from details, so an unknown movie fails
	// here rather than returning two empty buckets.
	movie, err := s.services.Discovery.MovieDetails(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	recs := s.services.Recommend.BooksForMovie(ctx, movie)
	return &RecommendationsOutput{Body: *recs}, nil
}
