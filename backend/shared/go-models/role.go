package models

import "fmt"

// Role is the closed set of account kinds. Every decision point switches on
// it exhaustively instead of comparing raw strings.
type Role string

const (
	RoleBuyer Role = "buyer"
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleBuyer, RoleOwner, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("invalid role: %q", s)
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// CanList reports whether the role may publish flats (subject to approval).
func (r Role) CanList() bool {
	switch r {
	case RoleOwner, RoleAdmin:
		return true
	case RoleBuyer:
		return false
	default:
		return false
	}
}

// CanBook reports whether the role may reserve flats.
func (r Role) CanBook() bool {
	switch r {
	case RoleBuyer, RoleAdmin:
		return true
	case RoleOwner:
		return false
	default:
		return false
	}
}

func (r Role) IsAdmin() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleBuyer, RoleOwner:
		return false
	default:
		return false
	}
}

// RequiresApproval reports whether a new account of this role starts
// unapproved and must be approved by an admin before listing.
func (r Role) RequiresApproval() bool {
	switch r {
	case RoleBuyer:
		return false
	case RoleOwner, RoleAdmin:
		return true
	default:
		return true
	}
}
