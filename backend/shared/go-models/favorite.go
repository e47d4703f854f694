package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is one (user, flat) wishlist row.
type Favorite struct {
	UserID    uuid.UUID `json:"user_id"`
	FlatID    uuid.UUID `json:"flat_id"`
	CreatedAt time.Time `json:"created_at"`
}
