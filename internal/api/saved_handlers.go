package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinematicapp/cinematic-server/internal/domain"
)

func (s *Server) registerSavedRoutes() {
	// Watchlist and read-later share shape and semantics, only the
	// collection differs.
	s.registerCollectionRoutes(domain.SavedDomainWatchlist, "Watchlist")
	s.registerCollectionRoutes(domain.SavedDomainReadLater, "Read Later")
}

func (s *Server) registerCollectionRoutes(collection domain.SavedDomain, tag string) {
	base := "/api/v1/" + string(collection)

	huma.Register(s.api, huma.Operation{
		OperationID: fmt.Sprintf("list-%s", collection),
		Method:      http.MethodGet,
		Path:        base,
		Summary:     "List saved items",
		Description: "Returns the signed-in account's saved items in insertion order, or an empty list when signed out",
		Tags:        []string{tag},
	}, func(ctx context.Context, _ *struct{}) (*SavedListOutput, error) {
		items, err := s.services.Saved.List(ctx, collection)
		if err != nil {
			return nil, err
		}
		return &SavedListOutput{Body: SavedListResponse{Items: items, Count: len(items)}}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   fmt.Sprintf("add-to-%s", collection),
		Method:        http.MethodPost,
		Path:          base,
		Summary:       "Save an item",
		Description:   "Adds a catalog item to the collection; duplicates are rejected",
		Tags:          []string{tag},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *SavedItemInput) (*SavedItemOutput, error) {
		if err := s.services.Saved.Add(ctx, collection, input.Body); err != nil {
			return nil, err
		}
		return &SavedItemOutput{Body: input.Body}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: fmt.Sprintf("remove-from-%s", collection),
		Method:      http.MethodDelete,
		Path:        base + "/{id}",
		Summary:     "Remove a saved item",
		Description: "Removes an item from the collection; removing an absent item is a no-op",
		Tags:        []string{tag},
	}, func(ctx context.Context, input *SavedItemIDInput) (*MessageOutput, error) {
		if err := s.services.Saved.Remove(ctx, collection, input.ID); err != nil {
			return nil, err
		}
		return &MessageOutput{Body: MessageResponse{Message: "Removed"}}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: fmt.Sprintf("check-%s", collection),
		Method:      http.MethodGet,
		Path:        base + "/{id}",
		Summary:     "Check saved state",
		Description: "Reports whether the item is present in the collection",
		Tags:        []string{tag},
	}, func(ctx context.Context, input *SavedItemIDInput) (*SavedStateOutput, error) {
		saved, err := s.services.Saved.Contains(ctx, collection, input.ID)
		if err != nil {
			return nil, err
		}
		return &SavedStateOutput{Body: SavedStateResponse{ID: input.ID, Saved: saved}}, nil
	})
}

// === DTOs ===

// SavedItemInput wraps a saved item for Huma.
type SavedItemInput struct {
	Body domain.SavedItem
}

// SavedItemIDInput identifies one saved item.
type SavedItemIDInput struct {
	ID string `path:"id" doc:"Catalog item ID"`
}

// SavedItemOutput wraps a saved item response for Huma.
type SavedItemOutput struct {
	Body domain.SavedItem
}

// SavedListResponse contains a saved collection listing.
type SavedListResponse struct {
	Items []domain.SavedItem `json:"items" doc:"Saved items in insertion order"`
	Count int                `json:"count" doc:"Number of saved items"`
}

// SavedListOutput wraps the listing for Huma.
type SavedListOutput struct {
	Body SavedListResponse
}

// SavedStateResponse reports membership of one item.
type SavedStateResponse struct {
	ID    string `json:"id" doc:"Catalog item ID"`
	Saved bool   `json:"saved" doc:"Whether the item is in the collection"`
}

// SavedStateOutput wraps the membership response for Huma.
type SavedStateOutput struct {
	Body SavedStateResponse
}
