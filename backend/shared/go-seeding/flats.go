package seeding

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-repositories"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

var DemoFlatID = uuid.MustParse("44444444-5555-6666-7777-888888888888")

// SeedFlats creates one listing owned by the demo owner.
func SeedFlats(ctx context.Context, flatRepo repositories.FlatRepository) error {
	existing, err := flatRepo.GetByID(ctx, DemoFlatID)
	if err != nil {
		return fmt.Errorf("error checking for demo flat: %w", err)
	}
	if existing != nil {
		utils.Logger.Infof("Demo flat already exists (ID=%s); skipping seed.", existing.ID)
		return nil
	}

	f := &models.Flat{
		ID:          DemoFlatID,
		Title:       "Sunny 2BHK near Shivaji Nagar",
		Description: "Bright apartment with balcony, close to the metro.",
		Price:       1000,
		Type:        models.FlatTypeApartment,
		OwnerID:     DemoOwnerID,
		Images:      []string{},
		Amenities:   []models.Amenity{models.AmenityParking, models.AmenityWifi, models.AmenityLift},
		BHKs:        2,
		Area:        850,
		Location: &models.Address{
			ID:         uuid.MustParse("55555555-6666-7777-8888-999999999999"),
			Address:    "12 FC Road",
			City:       "Pune",
			State:      "Maharashtra",
			Country:    "India",
			PostalCode: "411005",
			Latitude:   18.5308,
			Longitude:  73.8475,
			TimeZone:   "Asia/Kolkata",
		},
	}
	if err := flatRepo.CreateWithAddress(ctx, f); err != nil {
		return fmt.Errorf("failed to insert demo flat: %w", err)
	}
	utils.Logger.Infof("Seeded demo flat (ID=%s).", f.ID)
	return nil
}
