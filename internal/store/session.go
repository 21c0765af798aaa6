package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// activeSessionKey is the singleton key for the active session pointer.
// The server keeps at most one signed-in account at a time.
var activeSessionKey = []byte("session:active")

// ErrNoActiveSession is returned when no account is signed in.
var ErrNoActiveSession = errors.New("no active session")

type activeSession struct {
	AccountID string `json:"accountId"`
}

// SaveActiveSession records the given account as the signed-in account,
// replacing any previous session.
func (s *Store) SaveActiveSession(ctx context.Context, accountID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.set(activeSessionKey, &activeSession{AccountID: accountID}); err != nil {
		return fmt.Errorf("failed to save active session: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Active session saved", "account_id", accountID)
	}
	return nil
}

// LoadActiveSession returns the account ID of the signed-in account.
// Returns ErrNoActiveSession if nobody is signed in.
func (s *Store) LoadActiveSession(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var session activeSession
	err := s.get(activeSessionKey, &session)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return "", ErrNoActiveSession
		}
		return "", fmt.Errorf("failed to load active session: %w", err)
	}

	if session.AccountID == "" {
		return "", ErrNoActiveSession
	}
	return session.AccountID, nil
}

// ClearActiveSession removes the active session pointer.
// Clearing when nobody is signed in is a no-op.
func (s *Store) ClearActiveSession(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.delete(activeSessionKey); err != nil {
		return fmt.Errorf("failed to clear active session: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Active session cleared")
	}
	return nil
}
