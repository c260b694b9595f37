// Package identity provides the identity-provider surface the session/role
// coordinator consumes: credential entry points, a current-session snapshot,
// and a subscription that fires whenever the session changes.
package identity

import (
	"github.com/SR0NAK/insurebharat/internal/session"
)

// ChangeKind classifies a session-change notification.
type ChangeKind string

const (
	// SignedIn indicates a new session was established.
	SignedIn ChangeKind = "signed_in"
	// SignedOut indicates the session was destroyed. The Change carries a nil
	// session.
	SignedOut ChangeKind = "signed_out"
	// Refreshed indicates the session persists but its backing data may have
	// changed (token refresh, role re-assignment).
	Refreshed ChangeKind = "refreshed"
)

// Change is a session-change notification delivered to subscribers.
type Change struct {
	Kind    ChangeKind
	Session *session.Session
}

// SignUpInput is the input for the SignUp provider entry point. The
// RedirectTarget is where the user should land after confirming their
// registration.
type SignUpInput struct {
	Email          string
	Password       string
	RedirectTarget string
	Profile        session.Profile
}
