package domain

// Session is the public projection of the currently authenticated account.
// At most one session is active per running server; it is persisted so a
// restart rehydrates the signed-in state without re-validating credentials.
type Session struct {
	AccountID     string       `json:"account_id"`
	Username      string       `json:"username"`
	ProfilePhoto  string       `json:"profile_photo,omitempty"`
	PhotoBlurHash string       `json:"photo_blurhash,omitempty"`
	AvatarColor   string       `json:"avatar_color,omitempty"`
	Preferences   *Preferences `json:"preferences,omitempty"`
	IsFirstTime   bool         `json:"is_first_time"`
}

// HasPreferences returns true when the session carries saved preferences.
func (s *Session) HasPreferences() bool {
	return s != nil && s.Preferences != nil
}
