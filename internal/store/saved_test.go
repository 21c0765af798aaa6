package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cinematicapp/cinematic-server/internal/domain"
	"github.com/cinematicapp/cinematic-server/internal/store"
)

func savedMovie(id, title string) domain.SavedItem {
	return domain.SavedItem{
		ID:          id,
		Title:       title,
		Artwork:     "/poster.jpg",
		ReleaseDate: "2024-01-15",
		VoteAverage: 7.2,
		AddedAt:     time.Now(),
	}
}

func TestSaved_EmptyListForUnknownAccount(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	items, err := s.ListSaved(context.Background(), domain.SavedDomainWatchlist, "acct-nobody")
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestSaved_AddPreservesInsertionOrder(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	accountID := "acct-order"

	require.NoError(t, s.AddSaved(ctx, domain.SavedDomainWatchlist, accountID, savedMovie("m1", "First")))
	require.NoError(t, s.AddSaved(ctx, domain.SavedDomainWatchlist, accountID, savedMovie("m2", "Second")))
	require.NoError(t, s.AddSaved(ctx, domain.SavedDomainWatchlist, accountID, savedMovie("m3", "Third")))

	items, err := s.ListSaved(ctx, domain.SavedDomainWatchlist, accountID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "m1", items[0].ID)
	require.Equal(t, "m2", items[1].ID)
	require.Equal(t, "m3", items[2].ID)
}

func TestSaved_DuplicateAddRejected(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	accountID := "acct-dup"

	require.NoError(t, s.AddSaved(ctx, domain.SavedDomainWatchlist, accountID, savedMovie("m1", "First")))

	err := s.AddSaved(ctx, domain.SavedDomainWatchlist, accountID, savedMovie("m1", "First again"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	items, err := s.ListSaved(ctx, domain.SavedDomainWatchlist, accountID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "First", items[0].Title)
}

func TestSaved_RemoveMissingIsNoop(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	accountID := "acct-rm"

	require.NoError(t, s.AddSaved(ctx, domain.SavedDomainWatchlist, accountID, savedMovie("m1", "First")))

	require.NoError(t, s.RemoveSaved(ctx, domain.SavedDomainWatchlist, accountID, "m-missing"))
	require.NoError(t, s.RemoveSaved(ctx, domain.SavedDomainWatchlist, "acct-nobody", "m1"))

	require.NoError(t, s.RemoveSaved(ctx, domain.SavedDomainWatchlist, accountID, "m1"))
	items, err := s.ListSaved(ctx, domain.SavedDomainWatchlist, accountID)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestSaved_DomainsAreIndependent(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	accountID := "acct-split"

	require.NoError(t, s.AddSaved(ctx, domain.SavedDomainWatchlist, accountID, savedMovie("m1", "Movie")))
	require.NoError(t, s.AddSaved(ctx, domain.SavedDomainReadLater, accountID, domain.SavedItem{
		ID:      "b1",
		Title:   "Book",
		Authors: []string{"An Author"},
		AddedAt: time.Now(),
	}))

	watchlist, err := s.ListSaved(ctx, domain.SavedDomainWatchlist, accountID)
	require.NoError(t, err)
	require.Len(t, watchlist, 1)
	require.Equal(t, "m1", watchlist[0].ID)

	readLater, err := s.ListSaved(ctx, domain.SavedDomainReadLater, accountID)
	require.NoError(t, err)
	require.Len(t, readLater, 1)
	require.Equal(t, "b1", readLater[0].ID)

	// Same item ID may exist in both registries
	require.NoError(t, s.AddSaved(ctx, domain.SavedDomainReadLater, accountID, savedMovie("m1", "Movie")))
}

func TestSaved_AccountsAreIsolated(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.AddSaved(ctx, domain.SavedDomainWatchlist, "acct-a", savedMovie("m1", "A's movie")))

	items, err := s.ListSaved(ctx, domain.SavedDomainWatchlist, "acct-b")
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestSaved_ConcurrentAddsDoNotDropWrites(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	accountID := "acct-concurrent"

	var wg sync.WaitGroup
	count := 10
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			// Badger serializes conflicting transactions; retry on conflict
			item := savedMovie(fmt.Sprintf("m%d", n), fmt.Sprintf("Movie %d", n))
			for {
				err := s.AddSaved(ctx, domain.SavedDomainWatchlist, accountID, item)
				if err == nil || errors.Is(err, store.ErrAlreadyExists) {
					return
				}
			}
		}(i)
	}
	wg.Wait()

	items, err := s.ListSaved(ctx, domain.SavedDomainWatchlist, accountID)
	require.NoError(t, err)
	require.Len(t, items, count)
}
