package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cinematicapp/cinematic-server/internal/domain"
	"github.com/cinematicapp/cinematic-server/internal/store"
	"github.com/cinematicapp/cinematic-server/internal/validation"
)

// PreferenceService resolves the preferences that drive discovery.
// Resolution order: the active account's saved preferences, then the
// anonymous fallback document, then the built-in defaults.
type PreferenceService struct {
	store     *store.Store
	identity  *IdentityService
	validator *validation.Validator
	logger    *slog.Logger
}

// NewPreferenceService creates a new preference service.
func NewPreferenceService(
	s *store.Store,
	identity *IdentityService,
	validator *validation.Validator,
	logger *slog.Logger,
) *PreferenceService {
	return &PreferenceService{
		store:     s,
		identity:  identity,
		validator: validator,
		logger:    logger,
	}
}

// Resolve returns the effective preferences for the current caller.
// It never fails: a missing or unreadable fallback document degrades to
// the defaults.
func (s *PreferenceService) Resolve(ctx context.Context) domain.Preferences {
	if session, err := s.identity.Current(ctx); err == nil && session.HasPreferences() {
		return *session.Preferences
	}

	anon, err := s.store.GetAnonymousPreferences(ctx)
	if err == nil {
		return *anon
	}
	if !errors.Is(err, store.ErrNotFound) {
		s.logger.Warn("anonymous preferences unreadable, using defaults",
			"error", err,
		)
	}

	return domain.AnonymousPreferences()
}

// SaveAnonymous stores the signed-out fallback preferences.
func (s *PreferenceService) SaveAnonymous(ctx context.Context, prefs domain.Preferences) error {
	if err := s.validator.Validate(prefs); err != nil {
		return err
	}

	if err := s.store.UpsertAnonymousPreferences(ctx, &prefs); err != nil {
		return fmt.Errorf("save anonymous preferences: %w", err)
	}
	return nil
}

// Options lists the closed preference sets clients can choose from.
type Options struct {
	Languages   map[string]string `json:"languages"`
	MovieGenres map[string]string `json:"movie_genres"`
	BookGenres  map[string]string `json:"book_genres"`
}

// PreferenceOptions returns the supported languages and genres.
func (s *PreferenceService) PreferenceOptions() Options {
	return Options{
		Languages:   domain.Languages,
		MovieGenres: domain.MovieGenres,
		BookGenres:  domain.BookGenres,
	}
}
