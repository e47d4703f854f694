package dtos

import (
	shared "github.com/road2tec/girha-setu-sub000/backend/shared/go-dtos"
)

type WishlistRequest struct {
	ListingID string `json:"listingId" validate:"required,uuid"`
	User      string `json:"user" validate:"required,uuid"`
}

type WishlistResponse struct {
	Wishlist []*shared.FlatSummary `json:"wishlist"`
}
