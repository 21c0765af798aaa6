package domain

import (
	"time"

	"github.com/cinematicapp/cinematic-server/internal/color"
)

// Account represents a registered user account.
// The secret is stored as an opaque comparison value and compared
// case-sensitively at login; it is never exposed through a Session.
type Account struct {
	ID            string       `json:"id"`
	Username      string       `json:"username"`
	Secret        string       `json:"secret,omitempty"` // Filter from API responses
	ProfilePhoto  string       `json:"profile_photo,omitempty"`
	PhotoBlurHash string       `json:"photo_blurhash,omitempty"`
	Preferences   *Preferences `json:"preferences,omitempty"`
	IsFirstTime   bool         `json:"is_first_time"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Touch updates the account's modification timestamp.
func (a *Account) Touch() {
	a.UpdatedAt = time.Now()
}

// HasPreferences returns true once the account completed preference setup.
func (a *Account) HasPreferences() bool {
	return a.Preferences != nil
}

// Projection returns the account's public session projection.
// The credential secret never crosses this boundary.
func (a *Account) Projection() *Session {
	var prefs *Preferences
	if a.Preferences != nil {
		p := *a.Preferences
		prefs = &p
	}
	return &Session{
		AccountID:     a.ID,
		Username:      a.Username,
		ProfilePhoto:  a.ProfilePhoto,
		PhotoBlurHash: a.PhotoBlurHash,
		AvatarColor:   color.ForAccount(a.ID),
		Preferences:   prefs,
		IsFirstTime:   a.IsFirstTime,
	}
}
