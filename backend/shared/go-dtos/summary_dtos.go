package dtos

import (
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
)

// UserSummary is the public projection of a User used when populating
// bookings, chats and admin listings.
type UserSummary struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone,omitempty"`
	Role           models.Role `json:"role"`
	ProfilePicture string      `json:"profile_picture,omitempty"`
	Approved       bool        `json:"is_admin_approved"`
}

func NewUserSummary(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:             u.ID.String(),
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		Role:           u.Role,
		ProfilePicture: u.ProfilePicture,
		Approved:       u.IsAdminApproved,
	}
}

// FlatSummary is the compact listing card.
type FlatSummary struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Price     int64           `json:"price"`
	Type      models.FlatType `json:"type"`
	MainImage string          `json:"main_image"`
	BHKs      int             `json:"bhks"`
	City      string          `json:"city,omitempty"`
	OwnerID   string          `json:"owner_id"`
}

func NewFlatSummary(f *models.Flat) *FlatSummary {
	if f == nil {
		return nil
	}
	s := &FlatSummary{
		ID:        f.ID.String(),
		Title:     f.Title,
		Price:     f.Price,
		Type:      f.Type,
		MainImage: f.MainImage,
		BHKs:      f.BHKs,
		OwnerID:   f.OwnerID.String(),
	}
	if f.Location != nil {
		s.City = f.Location.City
	}
	return s
}
