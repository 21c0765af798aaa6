package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinematicapp/cinematic-server/internal/domain"
	domainerrors "github.com/cinematicapp/cinematic-server/internal/errors"
	"github.com/cinematicapp/cinematic-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/register",
		Summary:     "Register new account",
		Description: "Creates a local account and signs it in, replacing any active session",
		Tags:        []string{"Authentication"},
	}, s.handleRegister)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Sign in",
		Description: "Validates credentials and activates the session for this account",
		Tags:        []string{"Authentication"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout",
		Summary:     "Sign out",
		Description: "Clears the active session; signing out while anonymous is a no-op",
		Tags:        []string{"Authentication"},
	}, s.handleLogout)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSession",
		Method:      http.MethodGet,
		Path:        "/api/v1/session",
		Summary:     "Get current session",
		Description: "Returns the active session, or an anonymous marker when nobody is signed in",
		Tags:        []string{"Authentication"},
	}, s.handleGetSession)
}

// === DTOs ===

// CredentialsRequest carries a username and secret pair.
type CredentialsRequest struct {
	Username string `json:"username" minLength:"3" maxLength:"32" doc:"Account username (case-sensitive)"`
	Secret   string `json:"secret" minLength:"4" maxLength:"128" doc:"Account secret"`
}

// CredentialsInput wraps the credentials request for Huma.
type CredentialsInput struct {
	Body CredentialsRequest
}

// SessionResponse contains the public projection of the active session.
type SessionResponse struct {
	Authenticated bool                `json:"authenticated" doc:"Whether an account is signed in"`
	AccountID     string              `json:"account_id,omitempty" doc:"Signed-in account ID"`
	Username      string              `json:"username,omitempty" doc:"Signed-in username"`
	ProfilePhoto  string              `json:"profile_photo,omitempty" doc:"Profile photo data URL"`
	PhotoBlurHash string              `json:"photo_blurhash,omitempty" doc:"BlurHash placeholder for the photo"`
	AvatarColor   string              `json:"avatar_color,omitempty" doc:"Fallback avatar color when no photo is set"`
	Preferences   *domain.Preferences `json:"preferences,omitempty" doc:"Saved preferences, absent until first save"`
	IsFirstTime   bool                `json:"is_first_time,omitempty" doc:"True until the account saves preferences once"`
}

// SessionOutput wraps the session response for Huma.
type SessionOutput struct {
	Body SessionResponse
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// === Handlers ===

func (s *Server) handleRegister(ctx context.Context, input *CredentialsInput) (*SessionOutput, error) {
	session, err := s.services.Identity.Register(ctx, service.RegisterRequest{
		Username: input.Body.Username,
		Secret:   input.Body.Secret,
	})
	if err != nil {
		return nil, err
	}

	return &SessionOutput{Body: mapSessionResponse(session)}, nil
}

func (s *Server) handleLogin(ctx context.Context, input *CredentialsInput) (*SessionOutput, error) {
	session, err := s.services.Identity.Login(ctx, service.LoginRequest{
		Username: input.Body.Username,
		Secret:   input.Body.Secret,
	})
	if err != nil {
		return nil, err
	}

	return &SessionOutput{Body: mapSessionResponse(session)}, nil
}

func (s *Server) handleLogout(ctx context.Context, _ *struct{}) (*MessageOutput, error) {
	if err := s.services.Identity.Logout(ctx); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Signed out"}}, nil
}

func (s *Server) handleGetSession(ctx context.Context, _ *struct{}) (*SessionOutput, error) {
	session, err := s.services.Identity.Current(ctx)
	if err != nil {
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) && domainErr.Code == domainerrors.CodeNotAuthenticated {
			// Anonymous browsing is a normal state, not an error.
			return &SessionOutput{Body: SessionResponse{Authenticated: false}}, nil
		}
		return nil, err
	}

	return &SessionOutput{Body: mapSessionResponse(session)}, nil
}

// === Helpers ===

func mapSessionResponse(session *domain.Session) SessionResponse {
	return SessionResponse{
		Authenticated: true,
		AccountID:     session.AccountID,
		Username:      session.Username,
		ProfilePhoto:  session.ProfilePhoto,
		PhotoBlurHash: session.PhotoBlurHash,
		AvatarColor:   session.AvatarColor,
		Preferences:   session.Preferences,
		IsFirstTime:   session.IsFirstTime,
	}
}
