package models

import (
	"fmt"
	"strings"
)

// Role is the ordered position of an employee in the hierarchy.
// Comparisons always use the underlying ordinal, never the name.
type Role int

// Employee roles
const (
	RoleEmployee Role = 1
	RoleLeader   Role = 2
	RoleDirector Role = 3
)

var roleNames = map[Role]string{
	RoleEmployee: "Employee",
	RoleLeader:   "Leader",
	RoleDirector: "Director",
}

// IsValid checks if the role is one of the known roles
func (r Role) IsValid() bool {
	_, ok := roleNames[r]
	return ok
}

// AtLeast reports whether r ranks equal to or above other.
func (r Role) AtLeast(other Role) bool {
	return r >= other
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// ParseRole accepts a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	for role, name := range roleNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return role, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// Identity is the authenticated caller as asserted by an issued token.
type Identity struct {
	SubjectID      int64
	Email          string
	DocumentNumber int64
	Role           Role
}
