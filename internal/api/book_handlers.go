package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinematicapp/cinematic-server/internal/catalog/googlebooks"
	"github.com/cinematicapp/cinematic-server/internal/domain"
	"github.com/cinematicapp/cinematic-server/internal/normalize"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/search",
		Summary:     "Search books",
		Tags:        []string{"Books"},
	}, s.handleSearchBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book details",
		Tags:        []string{"Books"},
	}, s.handleGetBook)
}

// === DTOs ===

// SearchBooksInput contains the book search query.
type SearchBooksInput struct {
	Query    string `query:"q" doc:"Free-text book query"`
	Language string `query:"lang" doc:"Optional ISO 639-1 language restriction"`
}

// BooksResponse contains a book result list.
type BooksResponse struct {
	Results []domain.Book `json:"results" doc:"Matching books"`
}

// BooksOutput wraps the book list for Huma.
type BooksOutput struct {
	Body BooksResponse
}

// BookIDInput identifies one book volume.
type BookIDInput struct {
	ID string `path:"id" doc:"Book volume ID"`
}

// BookOutput wraps book details for Huma.
type BookOutput struct {
	Body domain.Book
}

// === Handlers ===

func (s *Server) handleSearchBooks(ctx context.Context, input *SearchBooksInput) (*BooksOutput, error) {
	// Locale-style values ("en-US") collapse to their base code;
	// unrecognized values drop the restriction instead of erroring.
	books, err := s.services.Recommend.SearchBooks(ctx, googlebooks.SearchParams{
		Query:    input.Query,
		Language: normalize.LanguageCode(input.Language),
	})
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []domain.Book{}
	}
	return &BooksOutput{Body: BooksResponse{Results: books}}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *BookIDInput) (*BookOutput, error) {
	book, err := s.services.Recommend.BookDetails(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: *book}, nil
}
