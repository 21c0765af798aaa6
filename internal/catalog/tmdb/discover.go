package tmdb

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/url"
	"strconv"

	"github.com/cinematicapp/cinematic-server/internal/domain"
)

// DiscoverParams filters a catalog discovery request. Zero-value fields
// are omitted from the query.
type DiscoverParams struct {
	Language       string // ISO 639-1 original-language filter
	GenreID        int
	ReleasedAfter  string // YYYY-MM-DD, inclusive lower bound
	ReleasedBefore string // YYYY-MM-DD, inclusive upper bound
	SortBy         string // e.g. "popularity.desc", "primary_release_date.desc"
}

// Discover queries the catalog's discovery endpoint with the given
// filters, scoped to the client's region.
func (c *Client) Discover(ctx context.Context, params DiscoverParams) ([]domain.Movie, error) {
	query := url.Values{}
	query.Set("region", c.region)
	query.Set("include_adult", "false")

	if params.Language != "" {
		query.Set("with_original_language", params.Language)
	}
	if params.GenreID != 0 {
		query.Set("with_genres", strconv.Itoa(params.GenreID))
	}
	if params.ReleasedAfter != "" {
		query.Set("primary_release_date.gte", params.ReleasedAfter)
	}
	if params.ReleasedBefore != "" {
		query.Set("primary_release_date.lte", params.ReleasedBefore)
	}
	if params.SortBy != "" {
		query.Set("sort_by", params.SortBy)
	}

	body, err := c.doRequest(ctx, "discover", "/discover/movie", query)
	if err != nil {
		return nil, wrapError("discover", "", err)
	}

	var resp rawMovieList
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("discover", "", fmt.Errorf("parse response: %w", err))
	}

	movies, err := rawListToDomain(resp.Results)
	if err != nil {
		return nil, wrapError("discover", "", err)
	}
	return movies, nil
}

// Trending returns the movies trending over the past week.
func (c *Client) Trending(ctx context.Context) ([]domain.Movie, error) {
	body, err := c.doRequest(ctx, "discover", "/trending/movie/week", nil)
	if err != nil {
		return nil, wrapError("trending", "", err)
	}

	var resp rawMovieList
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("trending", "", fmt.Errorf("parse response: %w", err))
	}

	movies, err := rawListToDomain(resp.Results)
	if err != nil {
		return nil, wrapError("trending", "", err)
	}
	return movies, nil
}

// Search performs a free-text title search.
func (c *Client) Search(ctx context.Context, queryText string) ([]domain.Movie, error) {
	query := url.Values{}
	query.Set("query", queryText)
	query.Set("region", c.region)
	query.Set("include_adult", "false")

	body, err := c.doRequest(ctx, "search", "/search/movie", query)
	if err != nil {
		return nil, wrapError("search", "", err)
	}

	var resp rawMovieList
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("search", "", fmt.Errorf("parse response: %w", err))
	}

	movies, err := rawListToDomain(resp.Results)
	if err != nil {
		return nil, wrapError("search", "", err)
	}
	return movies, nil
}
