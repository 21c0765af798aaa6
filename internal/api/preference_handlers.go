package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinematicapp/cinematic-server/internal/domain"
	"github.com/cinematicapp/cinematic-server/internal/normalize"
)

func (s *Server) registerPreferenceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getPreferences",
		Method:      http.MethodGet,
		Path:        "/api/v1/preferences",
		Summary:     "Get resolved preferences",
		Description: "Returns the effective preferences: session first, then the anonymous fallback, then defaults",
		Tags:        []string{"Preferences"},
	}, s.handleGetPreferences)

	huma.Register(s.api, huma.Operation{
		OperationID: "updatePreferences",
		Method:      http.MethodPut,
		Path:        "/api/v1/preferences",
		Summary:     "Save preferences",
		Description: "Saves preferences on the signed-in account, or on the shared anonymous document when nobody is signed in",
		Tags:        []string{"Preferences"},
	}, s.handleUpdatePreferences)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPreferenceOptions",
		Method:      http.MethodGet,
		Path:        "/api/v1/preferences/options",
		Summary:     "List preference options",
		Description: "Returns the closed sets of languages and genres the preference form offers",
		Tags:        []string{"Preferences"},
	}, s.handleGetPreferenceOptions)
}

// === DTOs ===

// PreferencesInput wraps a preferences update for Huma. Validation of
// the closed language and genre sets happens in the service layer.
type PreferencesInput struct {
	Body domain.Preferences
}

// PreferencesResponse contains resolved preferences plus their origin.
type PreferencesResponse struct {
	Source      string             `json:"source" enum:"account,anonymous,defaults" doc:"Where the resolved values came from"`
	Preferences domain.Preferences `json:"preferences" doc:"Effective preference values"`
	Labels      PreferenceLabels   `json:"labels" doc:"Display names for the resolved values"`
}

// PreferenceLabels carries the display names the settings page renders
// next to the stored codes. Unset or unknown codes produce empty labels.
type PreferenceLabels struct {
	MovieLanguage string `json:"movie_language,omitempty" doc:"Movie language display name"`
	MovieGenre    string `json:"movie_genre,omitempty" doc:"Movie genre display name"`
	BookLanguage  string `json:"book_language,omitempty" doc:"Book language display name"`
	BookGenre     string `json:"book_genre,omitempty" doc:"Book genre display name"`
}

func preferenceLabelsFor(prefs domain.Preferences) PreferenceLabels {
	labels := PreferenceLabels{
		MovieLanguage: normalize.Language(prefs.MovieLanguage),
		BookLanguage:  normalize.Language(prefs.BookLanguage),
	}
	if prefs.MovieGenre != "" {
		labels.MovieGenre = domain.MovieGenreName(prefs.MovieGenre)
	}
	if prefs.BookGenre != "" {
		labels.BookGenre = domain.BookGenreName(prefs.BookGenre)
	}
	return labels
}

// PreferencesOutput wraps the preferences response for Huma.
type PreferencesOutput struct {
	Body PreferencesResponse
}

// PreferenceOptionsResponse lists the selectable preference values.
type PreferenceOptionsResponse struct {
	Languages   map[string]string `json:"languages" doc:"Language code to display name"`
	MovieGenres map[string]string `json:"movie_genres" doc:"Movie genre ID to display name"`
	BookGenres  map[string]string `json:"book_genres" doc:"Book genre code to display name"`
}

// PreferenceOptionsOutput wraps the options response for Huma.
type PreferenceOptionsOutput struct {
	Body PreferenceOptionsResponse
}

// === Handlers ===

func (s *Server) handleGetPreferences(ctx context.Context, _ *struct{}) (*PreferencesOutput, error) {
	source := "defaults"
	if session, err := s.services.Identity.Current(ctx); err == nil && session.HasPreferences() {
		source = "account"
	} else if _, err := s.store.GetAnonymousPreferences(ctx); err == nil {
		source = "anonymous"
	}

	prefs := s.services.Prefs.Resolve(ctx)
	return &PreferencesOutput{
		Body: PreferencesResponse{
			Source:      source,
			Preferences: prefs,
			Labels:      preferenceLabelsFor(prefs),
		},
	}, nil
}

func (s *Server) handleUpdatePreferences(ctx context.Context, input *PreferencesInput) (*PreferencesOutput, error) {
	if _, err := s.services.Identity.AccountID(ctx); err == nil {
		if _, err := s.services.Identity.UpdatePreferences(ctx, input.Body); err != nil {
			return nil, err
		}
		return &PreferencesOutput{
			Body: PreferencesResponse{Source: "account", Preferences: input.Body, Labels: preferenceLabelsFor(input.Body)},
		}, nil
	}

	if err := s.services.Prefs.SaveAnonymous(ctx, input.Body); err != nil {
		return nil, err
	}
	return &PreferencesOutput{
		Body: PreferencesResponse{Source: "anonymous", Preferences: input.Body, Labels: preferenceLabelsFor(input.Body)},
	}, nil
}

func (s *Server) handleGetPreferenceOptions(_ context.Context, _ *struct{}) (*PreferenceOptionsOutput, error) {
	opts := s.services.Prefs.PreferenceOptions()
	return &PreferenceOptionsOutput{
		Body: PreferenceOptionsResponse{
			Languages:   opts.Languages,
			MovieGenres: opts.MovieGenres,
			BookGenres:  opts.BookGenres,
		},
	}, nil
}
