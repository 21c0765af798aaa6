package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cinematicapp/cinematic-server/internal/domain"
	domainerrors "github.com/cinematicapp/cinematic-server/internal/errors"
	"github.com/cinematicapp/cinematic-server/internal/id"
	"github.com/cinematicapp/cinematic-server/internal/media/images"
	"github.com/cinematicapp/cinematic-server/internal/sse"
	"github.com/cinematicapp/cinematic-server/internal/store"
	"github.com/cinematicapp/cinematic-server/internal/validation"
)

// IdentityService owns accounts and the single active session.
// The session lives in memory behind a mutex and is persisted so a
// restart rehydrates the signed-in state without re-validating
// credentials.
type IdentityService struct {
	store     *store.Store
	photos    *images.Processor
	validator *validation.Validator
	emitter   store.EventEmitter
	logger    *slog.Logger

	mu      sync.RWMutex
	current *domain.Account

	uploads sync.WaitGroup
}

// NewIdentityService creates a new identity service.
func NewIdentityService(
	s *store.Store,
	photos *images.Processor,
	validator *validation.Validator,
	emitter store.EventEmitter,
	logger *slog.Logger,
) *IdentityService {
	return &IdentityService{
		store:     s,
		photos:    photos,
		validator: validator,
		emitter:   emitter,
		logger:    logger,
	}
}

// RegisterRequest contains new-account credentials.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Secret   string `json:"secret" validate:"required,min=4,max=128"`
}

// LoginRequest contains account credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Secret   string `json:"secret" validate:"required"`
}

// Register creates an account and signs it in.
func (s *IdentityService) Register(ctx context.Context, req RegisterRequest) (*domain.Session, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	account := &domain.Account{
		ID:          id.MustGenerate("acct"),
		Username:    req.Username,
		Secret:      req.Secret,
		IsFirstTime: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Accounts.Create(ctx, account.ID, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.DuplicateUsername(fmt.Sprintf("username %q is taken", req.Username))
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.logger.Info("account registered",
		"account_id", account.ID,
		"username", account.Username,
	)

	return s.activate(ctx, account)
}

// Login validates credentials and establishes the active session.
// Username and secret are both compared case-sensitively.
func (s *IdentityService) Login(ctx context.Context, req LoginRequest) (*domain.Session, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	account, err := s.store.Accounts.GetByIndex(ctx, "username", req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same error as a wrong secret so probes can't enumerate usernames.
			return nil, domainerrors.InvalidCredentials("invalid username or secret")
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	if account.Secret != req.Secret {
		return nil, domainerrors.InvalidCredentials("invalid username or secret")
	}

	s.logger.Info("login",
		"account_id", account.ID,
		"username", account.Username,
	)

	return s.activate(ctx, account)
}

// activate makes the account the active session and persists it for
// rehydration.
func (s *IdentityService) activate(ctx context.Context, account *domain.Account) (*domain.Session, error) {
	if err := s.store.SaveActiveSession(ctx, account.ID); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.current = account
	s.mu.Unlock()

	session := account.Projection()
	s.emitter.Emit(sse.NewSessionUpdatedEvent(session))
	return session, nil
}

// Logout clears the active session. Calling it while signed out is a
// no-op.
func (s *IdentityService) Logout(ctx context.Context) error {
	if err := s.store.ClearActiveSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.mu.Lock()
	wasActive := s.current != nil
	s.current = nil
	s.mu.Unlock()

	if wasActive {
		s.logger.Info("logout")
		s.emitter.Emit(sse.NewSessionUpdatedEvent(nil))
	}
	return nil
}

// Current returns the active session, or NotAuthenticated.
func (s *IdentityService) Current(_ context.Context) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, domainerrors.NotAuthenticated("no active session")
	}
	return s.current.Projection(), nil
}

// AccountID returns the active account's ID, or NotAuthenticated.
func (s *IdentityService) AccountID(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return "", domainerrors.NotAuthenticated("no active session")
	}
	return s.current.ID, nil
}

// Rehydrate restores the persisted session at process start. A missing
// or dangling session record leaves the server signed out.
func (s *IdentityService) Rehydrate(ctx context.Context) (*domain.Session, error) {
	accountID, err := s.store.LoadActiveSession(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNoActiveSession) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	account, err := s.store.Accounts.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("persisted session references missing account",
				"account_id", accountID,
			)
			if clearErr := s.store.ClearActiveSession(ctx); clearErr != nil {
				return nil, fmt.Errorf("clear dangling session: %w", clearErr)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("load account: %w", err)
	}

	s.mu.Lock()
	s.current = account
	s.mu.Unlock()

	s.logger.Info("session rehydrated",
		"account_id", account.ID,
		"username", account.Username,
	)
	return account.Projection(), nil
}

// UpdatePreferences saves the active account's catalog preferences and
// clears its first-time flag.
func (s *IdentityService) UpdatePreferences(ctx context.Context, prefs domain.Preferences) (*domain.Session, error) {
	if err := s.validator.Validate(prefs); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, domainerrors.NotAuthenticated("no active session")
	}

	account := s.current
	account.Preferences = &prefs
	account.IsFirstTime = false
	account.Touch()

	if err := s.store.Accounts.Update(ctx, account.ID, account); err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}

	session := account.Projection()
	s.emitter.Emit(sse.NewSessionUpdatedEvent(session))
	return session, nil
}

// UploadProfilePhoto accepts a photo for the active account and
// processes it in the background. Completion is observed through the
// session.updated event; if the account signs out (or another signs in)
// before processing finishes, the result is discarded.
func (s *IdentityService) UploadProfilePhoto(ctx context.Context, data []byte) error {
	s.mu.RLock()
	if s.current == nil {
		s.mu.RUnlock()
		return domainerrors.NotAuthenticated("no active session")
	}
	accountID := s.current.ID
	s.mu.RUnlock()

	s.uploads.Add(1)
	go func() {
		defer s.uploads.Done()
		s.attachPhoto(context.WithoutCancel(ctx), accountID, data)
	}()

	return nil
}

// attachPhoto processes photo bytes and attaches the result to the
// account that requested the upload, if it is still the active session.
func (s *IdentityService) attachPhoto(ctx context.Context, accountID string, data []byte) {
	photo, err := s.photos.Process(accountID, data)
	if err != nil {
		s.logger.Error("profile photo processing failed",
			"account_id", accountID,
			"error", err,
		)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.ID != accountID {
		// Uploader signed out mid-flight; drop the result.
		s.logger.Debug("discarding photo for inactive account",
			"account_id", accountID,
		)
		return
	}

	account := s.current
	account.ProfilePhoto = photo.DataURL
	account.PhotoBlurHash = photo.BlurHash
	account.Touch()

	if err := s.store.Accounts.Update(ctx, account.ID, account); err != nil {
		s.logger.Error("failed to persist profile photo",
			"account_id", account.ID,
			"error", err,
		)
		return
	}

	s.emitter.Emit(sse.NewSessionUpdatedEvent(account.Projection()))
}

// WaitForUploads blocks until in-flight photo uploads settle. Used
// during shutdown and by tests.
func (s *IdentityService) WaitForUploads() {
	s.uploads.Wait()
}
