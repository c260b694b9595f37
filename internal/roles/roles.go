// Package roles provides the role-assignment model for insurebharat users. A
// user may hold zero or more role labels; capability decisions are always
// made through set-membership tests against the closed enumeration below
// rather than ad hoc string comparisons.
package roles

// Role is a label granting a capability to a user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleBroker Role = "broker"
	RoleAgent  Role = "agent"
)

// Known indicates whether the role is part of the closed insurebharat role
// enumeration. Unknown labels are carried through the store untouched but
// grant no capability.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleBroker, RoleAgent:
		return true
	}
	return false
}

// NewSet creates a Set containing the passed roles. Duplicates collapse.
func NewSet(roles ...Role) Set {
	set := make(Set, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return set
}

// Set is an unordered collection of role labels with set semantics.
type Set map[Role]struct{}

// Contains indicates whether the passed role is present in the Set.
func (s Set) Contains(role Role) bool {
	_, ok := s[role]
	return ok
}

// Equal checks if the passed Set holds exactly the receiver's roles.
func (s Set) Equal(s2 Set) bool {
	if len(s) != len(s2) {
		return false
	}
	for role := range s {
		if !s2.Contains(role) {
			return false
		}
	}
	return true
}

// Slice returns the Set's roles as a slice. Ordering is unspecified.
func (s Set) Slice() []Role {
	roles := make([]Role, 0, len(s))
	for role := range s {
		roles = append(roles, role)
	}
	return roles
}
