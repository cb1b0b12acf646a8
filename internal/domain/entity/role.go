package entity

import (
	"errors"
	"strings"
)

var (
	ErrMissingRole = errors.New("role is required")
	ErrUnknownRole = errors.New("unknown role")
)

// Role is the closed set of account kinds. There is no implicit default.
type Role string

const (
	RoleDonor     Role = "donor"
	RoleBank      Role = "bank"
	RoleRecipient Role = "recipient"
)

var Roles = []Role{RoleDonor, RoleBank, RoleRecipient}

func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", ErrMissingRole
	}
	role := Role(s)
	if !role.Valid() {
		return "", ErrUnknownRole
	}
	return role, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleBank, RoleRecipient:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
