package domain

import "time"

// SavedDomain names one per-user saved-item collection.
type SavedDomain string

const (
	// SavedDomainWatchlist holds movies saved for later viewing.
	SavedDomainWatchlist SavedDomain = "watchlist"
	// SavedDomainReadLater holds books saved for later reading.
	SavedDomainReadLater SavedDomain = "readlater"
)

// Valid reports whether the domain is one of the known collections.
func (d SavedDomain) Valid() bool {
	return d == SavedDomainWatchlist || d == SavedDomainReadLater
}

// SavedItem is the minimal projection of a catalog result kept in a
// user's collection. Movie entries carry release date and rating; book
// entries carry authors.
type SavedItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Artwork     string    `json:"artwork,omitempty"`
	ReleaseDate string    `json:"release_date,omitempty"`
	VoteAverage float64   `json:"vote_average,omitempty"`
	Authors     []string  `json:"authors,omitempty"`
	AddedAt     time.Time `json:"added_at,omitzero"`
}

// SavedItemFromMovie projects a catalog movie into a watchlist entry.
func SavedItemFromMovie(m *Movie) SavedItem {
	return SavedItem{
		ID:          m.ID,
		Title:       m.Title,
		Artwork:     m.PosterPath,
		ReleaseDate: m.ReleaseDate,
		VoteAverage: m.VoteAverage,
		AddedAt:     time.Now(),
	}
}

// SavedItemFromBook projects a catalog book into a read-later entry.
func SavedItemFromBook(b *Book) SavedItem {
	return SavedItem{
		ID:      b.ID,
		Title:   b.Title,
		Artwork: b.Thumbnail,
		Authors: b.Authors,
		AddedAt: time.Now(),
	}
}
