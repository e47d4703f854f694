package dtos

import (
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
)

type AddressInput struct {
	Address    string   `json:"address" validate:"required,min=3,max=255"`
	City       string   `json:"city" validate:"required,min=2,max=100"`
	State      string   `json:"state" validate:"required,min=2,max=100"`
	Country    string   `json:"country" validate:"required,min=2,max=100"`
	PostalCode string   `json:"postalCode" validate:"required,min=4,max=10"`
	Latitude   *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude  *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Landmark   *string  `json:"landmark,omitempty" validate:"omitempty,max=255"`
}

type CreateFlatRequest struct {
	Title       string       `json:"title" validate:"required,min=3,max=200"`
	Description string       `json:"description" validate:"required,max=5000"`
	Price       int64        `json:"price" validate:"gte=0"`
	Type        string       `json:"type" validate:"required"`
	MainImage   string       `json:"mainImage" validate:"omitempty,url"`
	Images      []string     `json:"images" validate:"omitempty,dive,url"`
	Amenities   []string     `json:"amenities"`
	BHKs        int          `json:"bhks" validate:"required,gte=1"`
	Area        float64      `json:"area" validate:"gte=0"`
	Location    AddressInput `json:"location"`
}

// UpdateFlatRequest carries only the fields to change.
type UpdateFlatRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       *int64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	Type        *string  `json:"type,omitempty"`
	MainImage   *string  `json:"mainImage,omitempty" validate:"omitempty,url"`
	Amenities   []string `json:"amenities,omitempty"`
	BHKs        *int     `json:"bhks,omitempty" validate:"omitempty,gte=1"`
	Area        *float64 `json:"area,omitempty" validate:"omitempty,gte=0"`
}

type ListFlatsQuery struct {
	City     string
	Type     string
	MinPrice *int64
	MaxPrice *int64
	BHKs     *int
	Lat      *float64
	Lng      *float64
	RadiusKm *float64
	Limit    int
	Offset   int
}

type FlatDetail struct {
	*models.Flat
	Ratings       []*models.Rating `json:"ratings"`
	AverageRating float64          `json:"averageRating"`
	RatingCount   int64            `json:"ratingCount"`
}

type ListFlatsResponse struct {
	Flats []*models.Flat `json:"flats"`
	Count int            `json:"count"`
}

type RateFlatRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type ImageUploadResponse struct {
	URL  string       `json:"url"`
	Flat *models.Flat `json:"flat"`
}
