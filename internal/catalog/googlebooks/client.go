package googlebooks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cinematicapp/cinematic-server/internal/domain"
	"github.com/cinematicapp/cinematic-server/internal/ratelimit"
)

const (
	// Rate limit: 2 requests per second per endpoint class, burst of 4.
	defaultRPS   = 2.0
	defaultBurst = 4

	// HTTP client settings
	defaultTimeout = 30 * time.Second

	defaultBaseURL = "https://www.googleapis.com/books/v1"

	// API settings
	defaultMaxResults = 20
	maxMaxResults     = 40
)

// Client is a rate-limited Google Books API client. The API key is
// optional; anonymous requests run under a lower upstream quota.
type Client struct {
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
	baseURL string
	apiKey  string
}

// New creates a new Google Books client.
func New(apiKey string, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: ratelimit.New(defaultRPS, defaultBurst),
		logger:  logger,
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
	}
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// doRequest executes an HTTP request with rate limiting.
func (c *Client) doRequest(ctx context.Context, class, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx, class); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	if query == nil {
		query = url.Values{}
	}
	if c.apiKey != "" {
		query.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Cinematic/1.0")

	c.logger.Debug("googlebooks request",
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
	case http.StatusBadRequest:
		return nil, ErrBadRequest
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}

// secureURL upgrades the http: scheme Google still returns on image
// links. The SPA is served over HTTPS; an http: image is blocked as
// mixed content.
func secureURL(u string) string {
	if rest, ok := strings.CutPrefix(u, "http://"); ok {
		return "https://" + rest
	}
	return u
}

// Raw API response types (internal)

type rawVolumeList struct {
	Items []rawVolume `json:"items"`
}

type rawVolume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title       string   `json:"title"`
		Authors     []string `json:"authors"`
		Description string   `json:"description"`
		Language    string   `json:"language"`
		PreviewLink string   `json:"previewLink"`
		ImageLinks  struct {
			Thumbnail      string `json:"thumbnail"`
			SmallThumbnail string `json:"smallThumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

// rawVolumeToDomain converts a raw volume into the domain shape.
// Descriptions arrive as HTML and are rendered down to Markdown.
func rawVolumeToDomain(v *rawVolume) (domain.Book, error) {
	if v.ID == "" {
		return domain.Book{}, ErrMalformedPayload
	}

	thumbnail := v.VolumeInfo.ImageLinks.Thumbnail
	if thumbnail == "" {
		thumbnail = v.VolumeInfo.ImageLinks.SmallThumbnail
	}
	thumbnail = secureURL(thumbnail)

	return domain.Book{
		ID:          v.ID,
		Title:       v.VolumeInfo.Title,
		Authors:     v.VolumeInfo.Authors,
		Description: htmlToMarkdown(v.VolumeInfo.Description),
		Thumbnail:   thumbnail,
		PreviewLink: v.VolumeInfo.PreviewLink,
		Language:    v.VolumeInfo.Language,
	}, nil
}
