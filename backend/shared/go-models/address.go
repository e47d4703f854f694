package models

import "github.com/google/uuid"

// Address is a geocoded postal address owned by a User or a Flat.
type Address struct {
	ID         uuid.UUID `json:"id"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Country    string    `json:"country"`
	PostalCode string    `json:"postal_code"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Landmark   *string   `json:"landmark,omitempty"`
	TimeZone   string    `json:"timezone,omitempty"`
}

// Coordinates returns [lat, lng].
func (a *Address) Coordinates() [2]float64 {
	return [2]float64{a.Latitude, a.Longitude}
}

func (a *Address) HasCoordinates() bool {
	return a.Latitude != 0 || a.Longitude != 0
}
