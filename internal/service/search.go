package service

import (
	"context"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/cinematicapp/cinematic-server/internal/domain"
	domainerrors "github.com/cinematicapp/cinematic-server/internal/errors"
	"github.com/cinematicapp/cinematic-server/internal/normalize"
)

// SearchOutcome is delivered to the submitter once a search settles.
// Exactly one of the terminal states applies: results, an error, or
// supersession by a newer query.
type SearchOutcome struct {
	Query      string
	Movies     []domain.Movie
	Err        error
	Superseded bool
}

// MovieSearcher debounces free-text catalog searches. Each submission
// restarts the quiescence timer; only the query standing when the timer
// fires is dispatched, and a response is applied only while its
// generation token is still the newest. Stale submissions resolve as
// superseded rather than delivering outdated results.
type MovieSearcher struct {
	catalog   MovieCatalog
	debounce  time.Duration
	minLength int
	logger    *slog.Logger

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	pending    []pendingSearch
}

type pendingSearch struct {
	query   string
	deliver func(SearchOutcome)
}

// NewMovieSearcher creates a new debounced searcher.
func NewMovieSearcher(catalog MovieCatalog, debounce time.Duration, minLength int, logger *slog.Logger) *MovieSearcher {
	return &MovieSearcher{
		catalog:   catalog,
		debounce:  debounce,
		minLength: minLength,
		logger:    logger,
	}
}

// Submit schedules a search for the normalized query. The deliver
// callback fires exactly once: with results, with an error, or marked
// superseded when a newer submission arrived first. Queries shorter
// than the minimum length fail synchronously and cancel any pending
// dispatch.
func (s *MovieSearcher) Submit(ctx context.Context, query string, deliver func(SearchOutcome)) error {
	normalized := normalize.Query(query)
	if utf8.RuneCountInString(normalized) < s.minLength {
		s.cancelPending()
		return domainerrors.Validationf("query must be at least %d characters", s.minLength)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	token := s.generation

	// Everyone still waiting on the timer has been superseded.
	s.flushPendingLocked()
	s.pending = append(s.pending, pendingSearch{query: normalized, deliver: deliver})

	if s.timer != nil {
		s.timer.Stop()
	}
	dispatchCtx := context.WithoutCancel(ctx)
	s.timer = time.AfterFunc(s.debounce, func() {
		s.dispatch(dispatchCtx, token, normalized)
	})

	return nil
}

// cancelPending drops any scheduled dispatch, resolving its waiters as
// superseded.
func (s *MovieSearcher) cancelPending() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.flushPendingLocked()
}

// flushPendingLocked resolves waiting submissions as superseded.
// Callers must hold s.mu.
func (s *MovieSearcher) flushPendingLocked() {
	for _, p := range s.pending {
		go p.deliver(SearchOutcome{Query: p.query, Superseded: true})
	}
	s.pending = nil
}

// dispatch runs the catalog query for one debounce firing. The result
// is dropped when a newer submission has been accepted since.
func (s *MovieSearcher) dispatch(ctx context.Context, token uint64, query string) {
	s.mu.Lock()
	if token != s.generation {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	movies, err := s.catalog.Search(ctx, query)

	s.mu.Lock()
	if token != s.generation {
		// A newer query was accepted while this one was in flight;
		// its own flush already resolved our waiter.
		s.mu.Unlock()
		return
	}
	waiters := s.pending
	s.pending = nil
	s.mu.Unlock()

	outcome := SearchOutcome{Query: query, Movies: movies}
	if err != nil {
		s.logger.Warn("movie search failed",
			"query", query,
			"error", err,
		)
		outcome = SearchOutcome{Query: query, Err: mapMovieCatalogError(err, "search")}
	}

	for _, w := range waiters {
		w.deliver(outcome)
	}
}
