// Package event provides types relevant to signal service changes outward
// to event consumers.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SR0NAK/insurebharat/internal/session"

	"github.com/google/uuid"
)

var errKindInvalid = errors.New("kind is not string type")

// Parse accepts a slice of bytes (b) and decodes these bytes into the
// appropriate event type.
func Parse(b []byte) (interface{}, error) {
	m := make(map[string]interface{})
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("unmarshal event; error: %w", err)
	}

	str, ok := m["kind"].(string)
	if !ok {
		return nil, errKindInvalid
	}

	var event interface{}
	switch Kind(str) {
	case SessionSignedIn:
		event = &SessionSignedInEvent{}
	case SessionSignedOut:
		event = &SessionSignedOutEvent{}
	case RolesChanged:
		event = &RolesChangedEvent{}
	default:
		return nil, fmt.Errorf("unexpected event; kind: %s, error: %w", str, errKindInvalid)
	}

	if err := json.Unmarshal(b, event); err != nil {
		return nil, fmt.Errorf("unmarshal event; type: %T, error: %w", event, err)
	}

	return event, nil
}

type Kind string

const (
	SessionSignedIn  Kind = "session_signed_in"
	SessionSignedOut Kind = "session_signed_out"
	RolesChanged     Kind = "roles_changed"
)

// New creates a new Event instance.
func New(kind Kind) Event {
	return Event{
		ID:        uuid.New(),
		Kind:      kind,
		CreatedAt: time.Now(),
	}
}

// Event is a generic insurebharat system event.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionSignedInEvent is fired when a user establishes a new session.
type SessionSignedInEvent struct {
	Event
	Session session.Session `json:"session"`
}

// NewSessionSignedInEvent creates a new SessionSignedInEvent instance.
func NewSessionSignedInEvent(sess session.Session) SessionSignedInEvent {
	return SessionSignedInEvent{
		Event:   New(SessionSignedIn),
		Session: sess,
	}
}

// SessionSignedOutEvent is fired when a session is destroyed, whether by an
// explicit sign-out or by invalidation.
type SessionSignedOutEvent struct {
	Event
	SessionID string    `json:"sessionId"`
	UserID    uuid.UUID `json:"userId"`
}

// NewSessionSignedOutEvent creates a new SessionSignedOutEvent instance.
func NewSessionSignedOutEvent(sessionID string, userID uuid.UUID) SessionSignedOutEvent {
	return SessionSignedOutEvent{
		Event:     New(SessionSignedOut),
		SessionID: sessionID,
		UserID:    userID,
	}
}

// RolesChangedEvent is fired when a user's role assignments change. Consumers
// holding derived capability flags for the user must re-resolve them.
type RolesChangedEvent struct {
	Event
	UserID uuid.UUID `json:"userId"`
}

// NewRolesChangedEvent creates a new RolesChangedEvent instance.
func NewRolesChangedEvent(userID uuid.UUID) RolesChangedEvent {
	return RolesChangedEvent{
		Event:  New(RolesChanged),
		UserID: userID,
	}
}
