package session

import (
	"github.com/google/uuid"
)

// User is a session user. It is expected that this type is used across the
// application to represent users via stateful sessions. Role assignments are
// intentionally not part of the session user; they are resolved separately
// through the roles store so that a role change does not require session
// re-issuance.
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`

	Profile Profile `json:"profile"`
}

func (u User) Equal(u2 User) bool {
	equal := true
	equal = equal && (u.ID == u2.ID)
	equal = equal && (u.Email == u2.Email)
	equal = equal && (u.Profile == u2.Profile)

	return equal
}

// Profile is the broker-supplied metadata collected at registration.
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
}
