package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cinematicapp/cinematic-server/internal/store"
)

func TestActiveSession_RoundTrip(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	// Nothing saved yet
	_, err := s.LoadActiveSession(ctx)
	require.ErrorIs(t, err, store.ErrNoActiveSession)

	require.NoError(t, s.SaveActiveSession(ctx, "acct-abc"))

	accountID, err := s.LoadActiveSession(ctx)
	require.NoError(t, err)
	require.Equal(t, "acct-abc", accountID)
}

func TestActiveSession_ReplacesPrevious(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.SaveActiveSession(ctx, "acct-first"))
	require.NoError(t, s.SaveActiveSession(ctx, "acct-second"))

	accountID, err := s.LoadActiveSession(ctx)
	require.NoError(t, err)
	require.Equal(t, "acct-second", accountID)
}

func TestActiveSession_Clear(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.SaveActiveSession(ctx, "acct-abc"))
	require.NoError(t, s.ClearActiveSession(ctx))

	_, err := s.LoadActiveSession(ctx)
	require.ErrorIs(t, err, store.ErrNoActiveSession)

	// Clearing without a session is a no-op
	require.NoError(t, s.ClearActiveSession(ctx))
}
