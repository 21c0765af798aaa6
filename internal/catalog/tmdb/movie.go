package tmdb

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"strconv"

	"github.com/cinematicapp/cinematic-server/internal/domain"
)

// Details retrieves the full record for a single movie.
func (c *Client) Details(ctx context.Context, movieID string) (*domain.Movie, error) {
	if _, err := strconv.Atoi(movieID); err != nil {
		return nil, wrapError("details", movieID, ErrBadRequest)
	}

	body, err := c.doRequest(ctx, "movie", "/movie/"+movieID, nil)
	if err != nil {
		return nil, wrapError("details", movieID, err)
	}

	var raw rawMovie
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, wrapError("details", movieID, fmt.Errorf("parse response: %w", err))
	}

	movie, err := rawMovieToDomain(&raw)
	if err != nil {
		return nil, wrapError("details", movieID, err)
	}
	return &movie, nil
}

// Credits retrieves the cast list for a movie, in billing order.
func (c *Client) Credits(ctx context.Context, movieID string) ([]domain.CastMember, error) {
	if _, err := strconv.Atoi(movieID); err != nil {
		return nil, wrapError("credits", movieID, ErrBadRequest)
	}

	body, err := c.doRequest(ctx, "movie", "/movie/"+movieID+"/credits", nil)
	if err != nil {
		return nil, wrapError("credits", movieID, err)
	}

	var resp struct {
		Cast []rawCastMember `json:"cast"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("credits", movieID, fmt.Errorf("parse response: %w", err))
	}

	cast := make([]domain.CastMember, 0, len(resp.Cast))
	for _, m := range resp.Cast {
		if m.ID == nil {
			return nil, wrapError("credits", movieID, ErrMalformedPayload)
		}
		cast = append(cast, domain.CastMember{
			ID:          strconv.Itoa(*m.ID),
			Name:        m.Name,
			Character:   m.Character,
			ProfilePath: imageURL(posterBaseURL, m.ProfilePath),
		})
	}

	return cast, nil
}

// Providers retrieves the subscription streaming services carrying a
// movie in the client's region. An unlisted region yields an empty
// slice, not an error.
func (c *Client) Providers(ctx context.Context, movieID string) ([]domain.WatchProvider, error) {
	if _, err := strconv.Atoi(movieID); err != nil {
		return nil, wrapError("providers", movieID, ErrBadRequest)
	}

	body, err := c.doRequest(ctx, "movie", "/movie/"+movieID+"/watch/providers", nil)
	if err != nil {
		return nil, wrapError("providers", movieID, err)
	}

	var resp struct {
		Results map[string]struct {
			Flatrate []rawProvider `json:"flatrate"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("providers", movieID, fmt.Errorf("parse response: %w", err))
	}

	regional := resp.Results[c.region]
	providers := make([]domain.WatchProvider, 0, len(regional.Flatrate))
	for _, p := range regional.Flatrate {
		if p.ProviderID == nil {
			return nil, wrapError("providers", movieID, ErrMalformedPayload)
		}
		providers = append(providers, domain.WatchProvider{
			ID:   strconv.Itoa(*p.ProviderID),
			Name: p.ProviderName,
			Logo: imageURL(posterBaseURL, p.LogoPath),
		})
	}

	return providers, nil
}
