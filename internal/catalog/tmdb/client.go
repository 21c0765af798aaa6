package tmdb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cinematicapp/cinematic-server/internal/domain"
	"github.com/cinematicapp/cinematic-server/internal/ratelimit"
)

const (
	// Rate limit: 4 requests per second per endpoint class, burst of 8.
	defaultRPS   = 4.0
	defaultBurst = 8

	// HTTP client settings
	defaultTimeout = 30 * time.Second

	defaultBaseURL = "https://api.themoviedb.org/3"

	// Image URL prefixes. Posters use a fixed render width; backdrops
	// are served at original resolution for hero display.
	posterBaseURL   = "https://image.tmdb.org/t/p/w500"
	backdropBaseURL = "https://image.tmdb.org/t/p/original"
)

// Client is a rate-limited TMDB API client.
type Client struct {
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
	baseURL string
	apiKey  string
	region  string
}

// New creates a new TMDB client. Results are filtered and providers
// resolved for the given region (ISO 3166-1 code).
func New(apiKey, region string, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: ratelimit.New(defaultRPS, defaultBurst),
		logger:  logger,
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		region:  region,
	}
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// doRequest executes an HTTP request with rate limiting. The limiter is
// keyed by endpoint class so a burst of detail lookups does not starve
// the discovery buckets.
func (c *Client) doRequest(ctx context.Context, class, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx, class); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Cinematic/1.0")

	c.logger.Debug("tmdb request",
		"class", class,
		"path", path,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case http.StatusBadRequest:
		return nil, ErrBadRequest
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}

// genreNames maps TMDB movie genre IDs to display names. List endpoints
// return bare genre_ids; only the details endpoint expands them.
var genreNames = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// GenreName returns the display name for a TMDB movie genre ID, or ""
// when the ID is not a known movie genre.
func GenreName(id int) string {
	return genreNames[id]
}

// imageURL prefixes a TMDB image path, which the API returns with a
// leading slash. Empty paths stay empty.
func imageURL(base, path string) string {
	if path == "" {
		return ""
	}
	return base + path
}

// Raw API response types (internal)

type rawMovie struct {
	ID           *int       `json:"id"`
	Title        string     `json:"title"`
	Overview     string     `json:"overview"`
	PosterPath   string     `json:"poster_path"`
	BackdropPath string     `json:"backdrop_path"`
	ReleaseDate  string     `json:"release_date"`
	VoteAverage  float64    `json:"vote_average"`
	GenreIDs     []int      `json:"genre_ids"`
	Genres       []rawGenre `json:"genres"`
	Runtime      int        `json:"runtime"`
}

type rawGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type rawMovieList struct {
	Results []rawMovie `json:"results"`
}

type rawCastMember struct {
	ID          *int   `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

type rawProvider struct {
	ProviderID   *int   `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path"`
}

// rawMovieToDomain converts a raw API movie into the domain shape.
// A payload without an id is unusable and reported as malformed.
func rawMovieToDomain(m *rawMovie) (domain.Movie, error) {
	if m.ID == nil {
		return domain.Movie{}, ErrMalformedPayload
	}

	genres := make([]domain.Genre, 0, len(m.Genres)+len(m.GenreIDs))
	for _, g := range m.Genres {
		genres = append(genres, domain.Genre{ID: g.ID, Name: g.Name})
	}
	for _, id := range m.GenreIDs {
		genres = append(genres, domain.Genre{ID: id, Name: GenreName(id)})
	}

	return domain.Movie{
		ID:             strconv.Itoa(*m.ID),
		Title:          m.Title,
		Overview:       m.Overview,
		PosterPath:     imageURL(posterBaseURL, m.PosterPath),
		BackdropPath:   imageURL(backdropBaseURL, m.BackdropPath),
		ReleaseDate:    m.ReleaseDate,
		VoteAverage:    m.VoteAverage,
		Genres:         genres,
		RuntimeMinutes: m.Runtime,
	}, nil
}

// rawListToDomain converts a list response, rejecting the whole page
// when any entry is missing its id.
func rawListToDomain(raw []rawMovie) ([]domain.Movie, error) {
	movies := make([]domain.Movie, 0, len(raw))
	for i := range raw {
		movie, err := rawMovieToDomain(&raw[i])
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	return movies, nil
}
