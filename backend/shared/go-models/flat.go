package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type FlatType string

const (
	FlatTypeApartment        FlatType = "Apartment"
	FlatTypeVilla            FlatType = "Villa"
	FlatTypeIndependentHouse FlatType = "Independent House"
	FlatTypeStudio           FlatType = "Studio"
	FlatTypePenthouse        FlatType = "Penthouse"
	FlatTypeDuplex           FlatType = "Duplex"
	FlatTypeBungalow         FlatType = "Bungalow"
	FlatTypeFarmhouse        FlatType = "Farmhouse"
	FlatTypeRowHouse         FlatType = "Row House"
	FlatTypeServiceApartment FlatType = "Service Apartment"
)

var FlatTypes = []FlatType{
	FlatTypeApartment, FlatTypeVilla, FlatTypeIndependentHouse, FlatTypeStudio, FlatTypePenthouse,
	FlatTypeDuplex, FlatTypeBungalow, FlatTypeFarmhouse, FlatTypeRowHouse, FlatTypeServiceApartment,
}

func ParseFlatType(s string) (FlatType, error) {
	for _, t := range FlatTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid flat type: %q", s)
}

type Amenity string

const (
	AmenityParking      Amenity = "Parking"
	AmenityWifi         Amenity = "WiFi"
	AmenityAC           Amenity = "Air Conditioning"
	AmenityGym          Amenity = "Gym"
	AmenitySwimmingPool Amenity = "Swimming Pool"
	AmenityPowerBackup  Amenity = "Power Backup"
	AmenityLift         Amenity = "Lift"
	AmenitySecurity     Amenity = "Security"
	AmenityGarden       Amenity = "Garden"
	AmenityFurnished    Amenity = "Furnished"
	AmenityWashing      Amenity = "Washing Machine"
	AmenityPetsAllowed  Amenity = "Pets Allowed"
)

var Amenities = []Amenity{
	AmenityParking, AmenityWifi, AmenityAC, AmenityGym, AmenitySwimmingPool, AmenityPowerBackup,
	AmenityLift, AmenitySecurity, AmenityGarden, AmenityFurnished, AmenityWashing, AmenityPetsAllowed,
}

func ParseAmenity(s string) (Amenity, error) {
	for _, a := range Amenities {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("invalid amenity: %q", s)
}

// Flat is a rentable listing.
type Flat struct {
	Versioned

	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Type        FlatType  `json:"type"`
	LocationID  uuid.UUID `json:"location_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	MainImage   string    `json:"main_image"`
	Images      []string  `json:"images"`
	Amenities   []Amenity `json:"amenities"`
	BHKs        int       `json:"bhks"`
	Area        float64   `json:"area"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Location is populated by joined reads.
	Location *Address `json:"location,omitempty"`
}

func (f *Flat) GetID() string {
	return f.ID.String()
}

// Rating is a buyer's score for a flat. One per (flat, user).
type Rating struct {
	ID        uuid.UUID `json:"id"`
	FlatID    uuid.UUID `json:"flat_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	MinRating = 1
	MaxRating = 5
)
