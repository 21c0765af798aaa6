package domain

import "time"

// releaseDateLayout is the date format used by the movie catalog.
const releaseDateLayout = "2006-01-02"

// Genre is a movie catalog genre reference.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Movie is a read-only movie record from the external catalog.
// Only a subset of its fields is ever persisted (see SavedItem).
type Movie struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Overview       string  `json:"overview,omitempty"`
	PosterPath     string  `json:"poster_path,omitempty"`
	BackdropPath   string  `json:"backdrop_path,omitempty"`
	ReleaseDate    string  `json:"release_date,omitempty"`
	VoteAverage    float64 `json:"vote_average,omitempty"`
	Genres         []Genre `json:"genres,omitempty"`
	RuntimeMinutes int     `json:"runtime_minutes,omitempty"`
}

// ReleasedBy reports whether the movie has a release date that is not
// after the given instant. Movies without a release date count as
// unreleased.
func (m *Movie) ReleasedBy(now time.Time) bool {
	if m.ReleaseDate == "" {
		return false
	}
	released, err := time.Parse(releaseDateLayout, m.ReleaseDate)
	if err != nil {
		return false
	}
	return !released.After(now)
}

// GenreNames returns the movie's genre display names in catalog order.
func (m *Movie) GenreNames() []string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	return names
}

// CastMember is one credited actor on a movie.
type CastMember struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character,omitempty"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// WatchProvider is a streaming service carrying a movie in some region.
type WatchProvider struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// Book is a read-only book record from the external catalog.
type Book struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors,omitempty"`
	Description string   `json:"description,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	PreviewLink string   `json:"preview_link,omitempty"`
	Language    string   `json:"language,omitempty"`
}

// CategorySet holds the named result buckets produced by one discovery
// pass, plus the diagnostics recorded for buckets that failed.
// A failed bucket is present and empty; it never aborts its siblings.
type CategorySet struct {
	TopPicks []Movie `json:"top_picks"`
	Latest   []Movie `json:"latest"`
	Upcoming []Movie `json:"upcoming"`
	Trending []Movie `json:"trending"`

	// Hero is the single featured movie, nil when every bucket is empty.
	Hero *Movie `json:"hero,omitempty"`

	// Errors holds one diagnostic per degraded bucket, keyed by bucket name.
	Errors map[string]string `json:"errors,omitempty"`
}

// BookRecommendations holds the two independent book buckets derived from
// a movie. The buckets may overlap; no deduplication is performed.
type BookRecommendations struct {
	ByGenre       []Book `json:"by_genre"`
	ByDescription []Book `json:"by_description"`

	// Errors holds one diagnostic per degraded bucket.
	Errors map[string]string `json:"errors,omitempty"`
}
