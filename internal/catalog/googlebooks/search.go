package googlebooks

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/url"
	"strconv"

	"github.com/cinematicapp/cinematic-server/internal/domain"
)

// SearchParams describes one volume search.
type SearchParams struct {
	// Query is the full-text query. Subject searches use the
	// "subject:{genre}" form.
	Query string

	// Language restricts results to an ISO 639-1 language, if set.
	Language string

	// OrderBy is "relevance" (default) or "newest".
	OrderBy string

	Limit int
}

// Search queries the volume catalog.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]domain.Book, error) {
	if params.Query == "" {
		return nil, wrapError("search", "", ErrBadRequest)
	}

	query := url.Values{}
	query.Set("q", params.Query)
	query.Set("printType", "books")

	if params.Language != "" {
		query.Set("langRestrict", params.Language)
	}
	if params.OrderBy != "" {
		query.Set("orderBy", params.OrderBy)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultMaxResults
	}
	if limit > maxMaxResults {
		limit = maxMaxResults
	}
	query.Set("maxResults", strconv.Itoa(limit))

	body, err := c.doRequest(ctx, "search", "/volumes", query)
	if err != nil {
		return nil, wrapError("search", "", err)
	}

	var resp rawVolumeList
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("search", "", fmt.Errorf("parse response: %w", err))
	}

	books := make([]domain.Book, 0, len(resp.Items))
	for i := range resp.Items {
		book, err := rawVolumeToDomain(&resp.Items[i])
		if err != nil {
			return nil, wrapError("search", "", err)
		}
		books = append(books, book)
	}

	return books, nil
}

// Volume retrieves a single volume by its catalog ID.
func (c *Client) Volume(ctx context.Context, volumeID string) (*domain.Book, error) {
	if volumeID == "" {
		return nil, wrapError("volume", volumeID, ErrBadRequest)
	}

	body, err := c.doRequest(ctx, "volume", "/volumes/"+url.PathEscape(volumeID), nil)
	if err != nil {
		return nil, wrapError("volume", volumeID, err)
	}

	var raw rawVolume
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, wrapError("volume", volumeID, fmt.Errorf("parse response: %w", err))
	}

	book, err := rawVolumeToDomain(&raw)
	if err != nil {
		return nil, wrapError("volume", volumeID, err)
	}
	return &book, nil
}
