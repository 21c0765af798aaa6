package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cinematicapp/cinematic-server/internal/domain"
	domainerrors "github.com/cinematicapp/cinematic-server/internal/errors"
	"github.com/cinematicapp/cinematic-server/internal/store"
)

// SavedService manages the active account's saved collections: the
// movie watchlist and the book read-later list. All operations require
// an authenticated session.
type SavedService struct {
	store    *store.Store
	identity *IdentityService
	logger   *slog.Logger
}

// NewSavedService creates a new saved-items service.
func NewSavedService(s *store.Store, identity *IdentityService, logger *slog.Logger) *SavedService {
	return &SavedService{
		store:    s,
		identity: identity,
		logger:   logger,
	}
}

// List returns the collection in insertion order. A collection never
// written yet is an empty list, not an error, and anonymous callers see
// an empty list rather than an authentication failure.
func (s *SavedService) List(ctx context.Context, d domain.SavedDomain) ([]domain.SavedItem, error) {
	if !d.Valid() {
		return nil, domainerrors.Validationf("unknown collection %q", d)
	}

	accountID, err := s.identity.AccountID(ctx)
	if err != nil {
		if domainerrors.Is(err, domainerrors.ErrNotAuthenticated) {
			return []domain.SavedItem{}, nil
		}
		return nil, err
	}

	items, err := s.store.ListSaved(ctx, d, accountID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", d, err)
	}
	return items, nil
}

// Add appends an item to the collection. Adding an ID already present
// fails with an already-exists error and leaves the list unchanged.
func (s *SavedService) Add(ctx context.Context, d domain.SavedDomain, item domain.SavedItem) error {
	if !d.Valid() {
		return domainerrors.Validationf("unknown collection %q", d)
	}
	if item.ID == "" || item.Title == "" {
		return domainerrors.Validation("saved item requires id and title")
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}

	accountID, err := s.identity.AccountID(ctx)
	if err != nil {
		return err
	}

	if err := s.store.AddSaved(ctx, d, accountID, item); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domainerrors.AlreadyExistsf("%q is already in %s", item.ID, d)
		}
		return fmt.Errorf("add to %s: %w", d, err)
	}

	s.logger.Debug("saved item added",
		"collection", d,
		"account_id", accountID,
		"item_id", item.ID,
	)
	return nil
}

// Remove deletes an item from the collection. Removing an absent ID is
// a no-op.
func (s *SavedService) Remove(ctx context.Context, d domain.SavedDomain, itemID string) error {
	if !d.Valid() {
		return domainerrors.Validationf("unknown collection %q", d)
	}

	accountID, err := s.identity.AccountID(ctx)
	if err != nil {
		return err
	}

	if err := s.store.RemoveSaved(ctx, d, accountID, itemID); err != nil {
		return fmt.Errorf("remove from %s: %w", d, err)
	}

	s.logger.Debug("saved item removed",
		"collection", d,
		"account_id", accountID,
		"item_id", itemID,
	)
	return nil
}

// Contains reports whether the item is present in the collection.
func (s *SavedService) Contains(ctx context.Context, d domain.SavedDomain, itemID string) (bool, error) {
	items, err := s.List(ctx, d)
	if err != nil {
		return false, err
	}
	for _, item := range items {
		if item.ID == itemID {
			return true, nil
		}
	}
	return false, nil
}
