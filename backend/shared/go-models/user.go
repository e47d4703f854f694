package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Versioned

	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	PasswordHash    string     `json:"-"` // Never serialize to JSON
	Role            Role       `json:"role"`
	ProfilePicture  string     `json:"profile_picture,omitempty"`
	AddressID       *uuid.UUID `json:"address_id,omitempty"`
	IsAdminApproved bool       `json:"is_admin_approved"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (u *User) GetID() string {
	return u.ID.String()
}

// CanPublish reports whether the user may create listings right now.
func (u *User) CanPublish() bool {
	if !u.Role.CanList() {
		return false
	}
	return u.IsAdminApproved || u.Role.IsAdmin()
}
