package seeding

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-repositories"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

var (
	DefaultAdminID = uuid.MustParse("11111111-2222-3333-4444-555555555555")
	DemoOwnerID    = uuid.MustParse("22222222-3333-4444-5555-666666666666")
	DemoBuyerID    = uuid.MustParse("33333333-4444-5555-6666-777777777777")
)

const demoPassword = "P@ssword123"

// SeedUsers creates the default admin, an approved owner and a buyer.
// Existing rows are left untouched.
func SeedUsers(ctx context.Context, userRepo repositories.UserRepository) error {
	seeds := []struct {
		id    uuid.UUID
		name  string
		email string
		phone string
		role  models.Role
	}{
		{DefaultAdminID, "Seed Admin", "admin@girhasetu.in", "+919800000001", models.RoleAdmin},
		{DemoOwnerID, "Ravi Owner", "owner@girhasetu.in", "+919800000002", models.RoleOwner},
		{DemoBuyerID, "Asha Buyer", "buyer@girhasetu.in", "+919800000003", models.RoleBuyer},
	}

	for _, s := range seeds {
		existing, err := userRepo.GetByID(ctx, s.id)
		if err != nil {
			return fmt.Errorf("error checking for existing user %s: %w", s.email, err)
		}
		if existing != nil {
			utils.Logger.Infof("Seed user already exists (ID=%s); skipping.", existing.ID)
			continue
		}

		hash, err := utils.HashPassword(demoPassword)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}

		u := &models.User{
			ID:              s.id,
			Name:            s.name,
			Email:           s.email,
			Phone:           s.phone,
			PasswordHash:    hash,
			Role:            s.role,
			IsAdminApproved: true,
		}
		if err := userRepo.Create(ctx, u); err != nil {
			return fmt.Errorf("failed to insert seed user %s: %w", s.email, err)
		}
		utils.Logger.Infof("Seeded %s user (ID=%s, email=%s).", s.role, s.id, s.email)
	}
	return nil
}
