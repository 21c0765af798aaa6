// Package sse implements Server-Sent Events for real-time session and saved-list updates.
package sse

import (
	"time"

	"github.com/cinematicapp/cinematic-server/internal/domain"
)

// The SPA uses SSE for server-to-client notifications only; everything else
// follows a request/response pattern.

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventSessionUpdated fires whenever the signed-in session changes:
	// sign in, sign out, preference updates, profile photo completion.
	EventSessionUpdated EventType = "session.updated"

	// EventWatchlistChanged fires when a movie is added to or removed from the watchlist.
	EventWatchlistChanged EventType = "watchlist.changed"

	// EventReadLaterChanged fires when a book is added to or removed from the read-later list.
	EventReadLaterChanged EventType = "readlater.changed"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"` // Event-specific data as JSON object
	Type      EventType `json:"type"`
}

// SessionEventData is the data payload for session events.
// Session is nil after a sign-out.
type SessionEventData struct {
	Session *domain.Session `json:"session"`
}

// SavedChangeAction describes what happened to a saved list.
type SavedChangeAction string

const (
	// SavedItemAdded indicates an item was appended to the list.
	SavedItemAdded SavedChangeAction = "added"
	// SavedItemRemoved indicates an item was removed from the list.
	SavedItemRemoved SavedChangeAction = "removed"
)

// SavedChangeEventData is the data payload for watchlist/read-later change events.
type SavedChangeEventData struct {
	AccountID string            `json:"account_id"`
	ItemID    string            `json:"item_id"`
	Action    SavedChangeAction `json:"action"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewSessionUpdatedEvent creates a session.updated event.
// Pass nil after sign-out so clients drop their cached session.
func NewSessionUpdatedEvent(session *domain.Session) Event {
	return Event{
		Type:      EventSessionUpdated,
		Data:      SessionEventData{Session: session},
		Timestamp: time.Now(),
	}
}

// NewSavedChangeEvent creates a watchlist.changed or readlater.changed event
// depending on the saved domain.
func NewSavedChangeEvent(d domain.SavedDomain, accountID, itemID string, action SavedChangeAction) Event {
	eventType := EventWatchlistChanged
	if d == domain.SavedDomainReadLater {
		eventType = EventReadLaterChanged
	}
	return Event{
		Type: eventType,
		Data: SavedChangeEventData{
			AccountID: accountID,
			ItemID:    itemID,
			Action:    action,
		},
		Timestamp: time.Now(),
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return Event{
		Type: EventHeartbeat,
		Data: HeartbeatEventData{
			ServerTime: time.Now(),
		},
		Timestamp: time.Now(),
	}
}
