package tmdb

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestClient returns a client pointed at a mock HTTP server.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	client := New("test-key", "IN", slog.New(slog.DiscardHandler))
	client.baseURL = server.URL
	return client, server
}

func TestClient_Discover(t *testing.T) {
	var gotQuery map[string]string
	handler := func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"results":[
			{"id":603,"title":"The Matrix","overview":"A hacker learns the truth.","poster_path":"/matrix.jpg","backdrop_path":"/matrix-bg.jpg","release_date":"1999-03-31","vote_average":8.2,"genre_ids":[28,878]},
			{"id":604,"title":"The Matrix Reloaded","release_date":"2003-05-15","vote_average":7.0,"genre_ids":[28]}
		]}`))
	}

	client, server := newTestClient(t, handler)
	defer server.Close()
	defer client.Close()

	movies, err := client.Discover(context.Background(), DiscoverParams{
		Language:       "ta",
		GenreID:        28,
		ReleasedBefore: "2026-01-01",
		SortBy:         "popularity.desc",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}
	if movies[0].ID != "603" {
		t.Errorf("expected ID '603', got %q", movies[0].ID)
	}
	if movies[0].PosterPath != "https://image.tmdb.org/t/p/w500/matrix.jpg" {
		t.Errorf("poster path not prefixed: %q", movies[0].PosterPath)
	}
	if movies[0].BackdropPath != "https://image.tmdb.org/t/p/original/matrix-bg.jpg" {
		t.Errorf("backdrop path not prefixed: %q", movies[0].BackdropPath)
	}
	if len(movies[0].Genres) != 2 || movies[0].Genres[1].Name != "Science Fiction" {
		t.Errorf("genre ids not resolved: %+v", movies[0].Genres)
	}
	if movies[1].PosterPath != "" {
		t.Errorf("missing poster should stay empty, got %q", movies[1].PosterPath)
	}

	// Verify query construction
	if gotQuery["api_key"] != "test-key" {
		t.Errorf("expected api_key in query, got %q", gotQuery["api_key"])
	}
	if gotQuery["with_original_language"] != "ta" {
		t.Errorf("expected language filter, got %q", gotQuery["with_original_language"])
	}
	if gotQuery["with_genres"] != "28" {
		t.Errorf("expected genre filter, got %q", gotQuery["with_genres"])
	}
	if gotQuery["primary_release_date.lte"] != "2026-01-01" {
		t.Errorf("expected release upper bound, got %q", gotQuery["primary_release_date.lte"])
	}
	if gotQuery["region"] != "IN" {
		t.Errorf("expected region, got %q", gotQuery["region"])
	}
}

func TestClient_Discover_MissingID(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"results":[{"title":"No ID Here"}]}`))
	}

	client, server := newTestClient(t, handler)
	defer server.Close()
	defer client.Close()

	_, err := client.Discover(context.Background(), DiscoverParams{})
	if err == nil {
		t.Fatal("expected error for payload without id")
	}
	if !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("expected ErrMalformedPayload, got %v", err)
	}
}

func TestClient_Discover_ServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}

	client, server := newTestClient(t, handler)
	defer server.Close()
	defer client.Close()

	_, err := client.Discover(context.Background(), DiscoverParams{})
	if !errors.Is(err, ErrServer) {
		t.Errorf("expected ErrServer, got %v", err)
	}

	var tmdbErr *Error
	if !errors.As(err, &tmdbErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if tmdbErr.Op != "discover" {
		t.Errorf("expected op 'discover', got %q", tmdbErr.Op)
	}
}

func TestClient_Search(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "enthiran" {
			t.Errorf("expected query 'enthiran', got %q", got)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"results":[{"id":34851,"title":"Enthiran","release_date":"2010-10-01","vote_average":7.1}]}`))
	}

	client, server := newTestClient(t, handler)
	defer server.Close()
	defer client.Close()

	movies, err := client.Search(context.Background(), "enthiran")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != 1 || movies[0].Title != "Enthiran" {
		t.Errorf("unexpected results: %+v", movies)
	}
}

func TestClient_Details(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/603" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":603,"title":"The Matrix","runtime":136,"genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}],"release_date":"1999-03-31"}`))
	}

	client, server := newTestClient(t, handler)
	defer server.Close()
	defer client.Close()

	movie, err := client.Details(context.Background(), "603")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movie.RuntimeMinutes != 136 {
		t.Errorf("expected runtime 136, got %d", movie.RuntimeMinutes)
	}
	if len(movie.Genres) != 2 || movie.Genres[0].Name != "Action" {
		t.Errorf("unexpected genres: %+v", movie.Genres)
	}
}

func TestClient_Details_InvalidID(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach server")
	})
	defer server.Close()
	defer client.Close()

	_, err := client.Details(context.Background(), "not-a-number")
	if !errors.Is(err, ErrBadRequest) {
		t.Errorf("expected ErrBadRequest, got %v", err)
	}
}

func TestClient_Details_NotFound(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}

	client, server := newTestClient(t, handler)
	defer server.Close()
	defer client.Close()

	_, err := client.Details(context.Background(), "999999999")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_Credits(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"cast":[
			{"id":6384,"name":"Keanu Reeves","character":"Neo","profile_path":"/keanu.jpg"},
			{"id":2975,"name":"Laurence Fishburne","character":"Morpheus"}
		]}`))
	}

	client, server := newTestClient(t, handler)
	defer server.Close()
	defer client.Close()

	cast, err := client.Credits(context.Background(), "603")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cast) != 2 {
		t.Fatalf("expected 2 cast members, got %d", len(cast))
	}
	if cast[0].ID != "6384" || cast[0].Character != "Neo" {
		t.Errorf("unexpected first cast member: %+v", cast[0])
	}
	if cast[1].ProfilePath != "" {
		t.Errorf("missing profile should stay empty, got %q", cast[1].ProfilePath)
	}
}

func TestClient_Providers(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"results":{
			"IN":{"flatrate":[{"provider_id":8,"provider_name":"Netflix","logo_path":"/netflix.jpg"}]},
			"US":{"flatrate":[{"provider_id":9,"provider_name":"Prime Video"}]}
		}}`))
	}

	client, server := newTestClient(t, handler)
	defer server.Close()
	defer client.Close()

	providers, err := client.Providers(context.Background(), "603")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(providers) != 1 {
		t.Fatalf("expected 1 provider for IN, got %d", len(providers))
	}
	if providers[0].Name != "Netflix" {
		t.Errorf("expected Netflix, got %q", providers[0].Name)
	}
}

func TestClient_Providers_RegionAbsent(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"results":{}}`))
	}

	client, server := newTestClient(t, handler)
	defer server.Close()
	defer client.Close()

	providers, err := client.Providers(context.Background(), "603")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(providers) != 0 {
		t.Errorf("expected empty providers, got %+v", providers)
	}
}

func TestGenreName(t *testing.T) {
	if got := GenreName(878); got != "Science Fiction" {
		t.Errorf("GenreName(878) = %q", got)
	}
	if got := GenreName(424242); got != "" {
		t.Errorf("GenreName(424242) = %q, want empty", got)
	}
}
