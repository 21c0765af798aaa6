// Package normalize provides utilities for normalizing and sanitizing data.
package normalize

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// codeToLanguageName maps the catalog's supported ISO 639-1 codes to display names.
//
//nolint:gochecknoglobals // Static lookup table for language normalization
var codeToLanguageName = map[string]string{
	"ta": "Tamil",
	"en": "English",
	"te": "Telugu",
	"ml": "Malayalam",
	"hi": "Hindi",
}

// Query normalizes a free-text search query before it is sent upstream:
// null bytes are dropped, the text is NFC-normalized, and runs of
// whitespace collapse to single spaces.
func Query(raw string) string {
	s := sanitizeString(raw)
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// LanguageCode converts various language representations to an ISO 639-1 base code:
//   - Locale codes: "en-US", "en_GB" -> "en"
//   - ISO 639-2 codes: "eng" -> "en"
//   - Language names are not resolved; unrecognized values return "".
func LanguageCode(raw string) string {
	s := strings.TrimSpace(sanitizeString(raw))
	if s == "" {
		return ""
	}

	// BCP 47 uses hyphens; accept POSIX-style underscores too.
	s = strings.ReplaceAll(s, "_", "-")

	tag, err := language.Parse(s)
	if err != nil {
		return ""
	}

	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	return base.String()
}

// Language converts a language code to its display name.
// "ta" -> "Tamil", "en-US" -> "English"
// Returns empty string for codes outside the catalog's supported set.
func Language(raw string) string {
	code := LanguageCode(raw)
	if code == "" {
		return ""
	}

	if name, ok := codeToLanguageName[code]; ok {
		return name
	}
	return ""
}

// FirstWords returns the first n whitespace-separated words of s.
// Used to build compact lookup queries from long descriptions.
func FirstWords(s string, n int) string {
	fields := strings.Fields(sanitizeString(s))
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}

// sanitizeString removes null bytes from strings, which can cause
// issues in databases and JSON parsing.
func sanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 { // null byte
			return -1 // drop it
		}
		return r
	}, s)
}
