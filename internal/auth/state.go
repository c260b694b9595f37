package auth

import (
	"encoding/json"

	"github.com/SR0NAK/insurebharat/internal/roles"
	"github.com/SR0NAK/insurebharat/internal/session"
)

// State is a snapshot of the coordinator's authentication state. Session and
// User are nil while no user is signed in. Roles always holds the set from
// the most recently resolved role fetch; during the gap between a session
// change and its role fetch resolving, it may still describe the previous
// user.
type State struct {
	Session *session.Session
	User    *session.User
	Roles   roles.Set

	// Loading is true from coordinator start until the first session
	// determination completes. Consumers must not make access-control
	// decisions while Loading is true.
	Loading bool
}

// IsAdmin indicates the admin role label is present for the current user.
func (s State) IsAdmin() bool {
	return s.Roles.Contains(roles.RoleAdmin)
}

// IsBroker indicates the broker role label is present for the current user.
func (s State) IsBroker() bool {
	return s.Roles.Contains(roles.RoleBroker)
}

// IsAgent indicates the agent role label is present for the current user.
func (s State) IsAgent() bool {
	return s.Roles.Contains(roles.RoleAgent)
}

// MarshalJSON emits the state contract consumed by routing and navigation:
// the user, the session, the loading flag, and one capability flag per role
// label.
func (s State) MarshalJSON() ([]byte, error) {
	kv := map[string]interface{}{
		"user":     s.User,
		"session":  s.Session,
		"loading":  s.Loading,
		"isAdmin":  s.IsAdmin(),
		"isBroker": s.IsBroker(),
		"isAgent":  s.IsAgent(),
	}

	return json.Marshal(kv)
}
