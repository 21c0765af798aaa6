package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/cinematicapp/cinematic-server/internal/catalog/googlebooks"
	"github.com/cinematicapp/cinematic-server/internal/domain"
	domainerrors "github.com/cinematicapp/cinematic-server/internal/errors"
	"github.com/cinematicapp/cinematic-server/internal/normalize"
)

// descriptionQueryWords is how much of a movie synopsis seeds the
// description-based book query.
const descriptionQueryWords = 6

// Bucket names used in BookRecommendations diagnostics.
const (
	bucketByGenre       = "by_genre"
	bucketByDescription = "by_description"
)

// RecommendService derives book suggestions from a movie. Two
// independent queries run concurrently: one from the movie's genre
// names, one from the opening words of its synopsis. The buckets may
// overlap; no deduplication is performed.
type RecommendService struct {
	books  BookCatalog
	logger *slog.Logger
}

// NewRecommendService creates a new recommendation service.
func NewRecommendService(books BookCatalog, logger *slog.Logger) *RecommendService {
	return &RecommendService{
		books:  books,
		logger: logger,
	}
}

// BooksForMovie returns the two recommendation buckets for a movie.
// Each bucket degrades independently to empty with a recorded
// diagnostic.
func (s *RecommendService) BooksForMovie(ctx context.Context, movie *domain.Movie) *domain.BookRecommendations {
	genreQuery := genreQueryFor(movie)
	descQuery := descriptionQueryFor(movie)

	var (
		recs domain.BookRecommendations
		wg   sync.WaitGroup
		mu   sync.Mutex
	)
	errs := make(map[string]string)

	fetch := func(name, query string, dst *[]domain.Book) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			books, err := s.books.Search(ctx, googlebooks.SearchParams{Query: query})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Warn("recommendation bucket failed",
					"bucket", name,
					"query", query,
					"error", err,
				)
				errs[name] = err.Error()
				*dst = []domain.Book{}
				return
			}
			*dst = books
		}()
	}

	fetch(bucketByGenre, genreQuery, &recs.ByGenre)
	fetch(bucketByDescription, descQuery, &recs.ByDescription)
	wg.Wait()

	if len(errs) > 0 {
		recs.Errors = errs
	}
	return &recs
}

// genreQueryFor space-joins the movie's genre names, falling back to
// the default genre for movies without any.
func genreQueryFor(movie *domain.Movie) string {
	all := movie.GenreNames()
	names := make([]string, 0, len(all))
	for _, name := range all {
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "subject:" + domain.DefaultBookGenre
	}
	return "subject:" + strings.Join(names, " ")
}

// descriptionQueryFor takes the first words of the synopsis, falling
// back to the title for movies without one.
func descriptionQueryFor(movie *domain.Movie) string {
	if q := normalize.FirstWords(movie.Overview, descriptionQueryWords); q != "" {
		return q
	}
	return movie.Title
}

// SearchBooks runs a preference-aware book search for the browse page.
func (s *RecommendService) SearchBooks(ctx context.Context, params googlebooks.SearchParams) ([]domain.Book, error) {
	books, err := s.books.Search(ctx, params)
	if err != nil {
		return nil, mapBookCatalogError(err, "book search")
	}
	return books, nil
}

// BookDetails returns the full catalog record for one book.
func (s *RecommendService) BookDetails(ctx context.Context, bookID string) (*domain.Book, error) {
	book, err := s.books.Volume(ctx, bookID)
	if err != nil {
		return nil, mapBookCatalogError(err, "book "+bookID)
	}
	return book, nil
}

// mapBookCatalogError converts catalog client sentinels to domain
// errors.
func mapBookCatalogError(err error, subject string) error {
	switch {
	case errors.Is(err, googlebooks.ErrNotFound):
		return domainerrors.NotFound(subject + " not found")
	case errors.Is(err, googlebooks.ErrBadRequest):
		return domainerrors.Validation("invalid catalog request for " + subject)
	case errors.Is(err, googlebooks.ErrMalformedPayload):
		return domainerrors.MalformedPayload("book catalog returned an unusable record for " + subject)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return domainerrors.Upstream("book catalog unavailable").WithCause(fmt.Errorf("%s: %w", subject, err))
	}
}
