package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/cinematicapp/cinematic-server/internal/domain"
	"github.com/cinematicapp/cinematic-server/internal/sse"
)

const savedPrefix = "saved:"

// savedKey builds the registry key for one account's saved list in one domain.
// Format: saved:{domain}:{accountID}
func savedKey(d domain.SavedDomain, accountID string) []byte {
	return []byte(savedPrefix + string(d) + ":" + accountID)
}

// ListSaved returns the saved items for an account in insertion order.
// A missing registry is an empty list, not an error.
func (s *Store) ListSaved(ctx context.Context, d domain.SavedDomain, accountID string) ([]domain.SavedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var items []domain.SavedItem
	err := s.get(savedKey(d, accountID), &items)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return []domain.SavedItem{}, nil
		}
		return nil, fmt.Errorf("failed to list saved items: %w", err)
	}

	return items, nil
}

// AddSaved appends an item to an account's saved list.
// Returns ErrAlreadyExists if an item with the same ID is already present.
// The read-check-append sequence runs in a single transaction so concurrent
// adds cannot drop each other's writes.
func (s *Store) AddSaved(ctx context.Context, d domain.SavedDomain, accountID string, item domain.SavedItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := savedKey(d, accountID)

	err := s.db.Update(func(txn *badger.Txn) error {
		var items []domain.SavedItem

		current, err := txn.Get(key)
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to read saved list: %w", err)
		}
		if err == nil {
			err = current.Value(func(val []byte) error {
				return json.Unmarshal(val, &items)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal saved list: %w", err)
			}
		}

		for _, existing := range items {
			if existing.ID == item.ID {
				return ErrAlreadyExists
			}
		}

		items = append(items, item)

		data, err := json.Marshal(items)
		if err != nil {
			return fmt.Errorf("failed to marshal saved list: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return err
	}

	s.eventEmitter.Emit(sse.NewSavedChangeEvent(d, accountID, item.ID, sse.SavedItemAdded))
	return nil
}

// RemoveSaved removes an item from an account's saved list by ID.
// Removing an absent item is a no-op.
func (s *Store) RemoveSaved(ctx context.Context, d domain.SavedDomain, accountID, itemID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := savedKey(d, accountID)

	removed := false
	err := s.db.Update(func(txn *badger.Txn) error {
		current, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read saved list: %w", err)
		}

		var items []domain.SavedItem
		err = current.Value(func(val []byte) error {
			return json.Unmarshal(val, &items)
		})
		if err != nil {
			return fmt.Errorf("failed to unmarshal saved list: %w", err)
		}

		filtered := items[:0]
		for _, existing := range items {
			if existing.ID != itemID {
				filtered = append(filtered, existing)
			}
		}
		if len(filtered) == len(items) {
			return nil
		}
		removed = true

		data, err := json.Marshal(filtered)
		if err != nil {
			return fmt.Errorf("failed to marshal saved list: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return err
	}

	if removed {
		s.eventEmitter.Emit(sse.NewSavedChangeEvent(d, accountID, itemID, sse.SavedItemRemoved))
	}
	return nil
}
