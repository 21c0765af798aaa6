package domain

// DefaultLanguage is the fallback language code used for both movies and
// books when no preference has been saved.
const DefaultLanguage = "en"

// DefaultBookGenre is the fallback book genre used when a recommendation
// or lookup needs a genre and none is available.
const DefaultBookGenre = "Fiction"

// Preferences holds a user's standing catalog preferences.
// Language and genre values come from the closed sets below.
type Preferences struct {
	MovieLanguage string `json:"movie_language" validate:"required,oneof=ta en te ml hi"`
	MovieGenre    string `json:"movie_genre,omitempty" validate:"omitempty,oneof=28 12 35 18 53 878 14 10749 27 16"`
	BookLanguage  string `json:"book_language" validate:"required,oneof=ta en te ml hi"`
	BookGenre     string `json:"book_genre,omitempty" validate:"omitempty,oneof=Fiction Mystery Fantasy Romance History Self-Help YA Children Comics"`
	DateOfBirth   string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// AnonymousPreferences returns the fallback preferences used for visitors
// without a session: default language, no genre restriction.
func AnonymousPreferences() Preferences {
	return Preferences{
		MovieLanguage: DefaultLanguage,
		BookLanguage:  DefaultLanguage,
	}
}

// Languages lists the supported content languages (ISO 639-1 codes).
var Languages = map[string]string{
	"ta": "Tamil",
	"en": "English",
	"te": "Telugu",
	"ml": "Malayalam",
	"hi": "Hindi",
}

// MovieGenres maps movie catalog genre IDs to display names.
var MovieGenres = map[string]string{
	"28":    "Action",
	"12":    "Adventure",
	"35":    "Comedy",
	"18":    "Drama",
	"53":    "Thriller",
	"878":   "Science Fiction",
	"14":    "Fantasy",
	"10749": "Romance",
	"27":    "Horror",
	"16":    "Animation",
}

// BookGenres maps book catalog subject codes to display names.
var BookGenres = map[string]string{
	"Fiction":   "Fiction",
	"Mystery":   "Mystery / Thriller",
	"Fantasy":   "Fantasy / Science Fiction",
	"Romance":   "Romance",
	"History":   "Historical / Biography",
	"Self-Help": "Self-Help / Psychology",
	"YA":        "Young Adult (YA)",
	"Children":  "Children's Books",
	"Comics":    "Comics / Graphic Novels",
}

// MovieGenreName returns the display name for a movie genre ID,
// or the ID itself when unknown.
func MovieGenreName(id string) string {
	if name, ok := MovieGenres[id]; ok {
		return name
	}
	return id
}

// BookGenreName returns the display name for a book genre code,
// or the code itself when unknown.
func BookGenreName(code string) string {
	if name, ok := BookGenres[code]; ok {
		return name
	}
	return code
}
