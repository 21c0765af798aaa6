package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/cinematicapp/cinematic-server/internal/domain"
)

// anonPrefsKey is the singleton key for anonymous browsing preferences.
// These apply when nobody is signed in; registration never copies them.
var anonPrefsKey = []byte("prefs:anon")

// ErrAnonPreferencesNotFound is returned when no anonymous preferences were saved.
var ErrAnonPreferencesNotFound = ErrNotFound.WithMessage("anonymous preferences not found")

// GetAnonymousPreferences retrieves the anonymous browsing preferences.
func (s *Store) GetAnonymousPreferences(ctx context.Context) (*domain.Preferences, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var prefs domain.Preferences
	err := s.get(anonPrefsKey, &prefs)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrAnonPreferencesNotFound
		}
		return nil, fmt.Errorf("failed to get anonymous preferences: %w", err)
	}

	return &prefs, nil
}

// UpsertAnonymousPreferences creates or replaces the anonymous browsing preferences.
func (s *Store) UpsertAnonymousPreferences(ctx context.Context, prefs *domain.Preferences) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.set(anonPrefsKey, prefs); err != nil {
		return fmt.Errorf("failed to save anonymous preferences: %w", err)
	}
	return nil
}
