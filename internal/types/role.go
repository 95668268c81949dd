package types

import (
	"fmt"
	"strings"
)

// Role is the closed set of role kinds an identity can hold.
type Role string

const (
	RoleAdministrator Role = "ADMINISTRATOR"
	RoleOperator      Role = "OPERATOR"
	RoleOrganizer     Role = "ORGANIZER"
	RoleVerifier      Role = "VERIFIER"
)

func (r Role) String() string {
	return string(r)
}

// Validate rejects anything outside the closed role set.
func (r Role) Validate() error {
	switch r {
	case RoleAdministrator, RoleOperator, RoleOrganizer, RoleVerifier:
		return nil
	default:
		return fmt.Errorf("%w: unknown role %q", ErrInvalidParams, string(r))
	}
}

// AllRoles lists every role kind.
func AllRoles() []Role {
	return []Role{RoleAdministrator, RoleOperator, RoleOrganizer, RoleVerifier}
}

// ParseRole accepts role names case-insensitively, e.g. "verifier".
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}
