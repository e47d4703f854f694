package app

import (
	"context"
	"fmt"

	"github.com/road2tec/girha-setu-sub000/backend/shared/go-repositories"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-seeding"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

// SeedAllTestData inserts the demo admin, owner, buyer and flat. Seeding is
// idempotent.
func SeedAllTestData(ctx context.Context, users repositories.UserRepository, flats repositories.FlatRepository) error {
	if err := seeding.SeedUsers(ctx, users); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := seeding.SeedFlats(ctx, flats); err != nil {
		return fmt.Errorf("seed flats: %w", err)
	}
	utils.Logger.Info("Seeded demo users and flats")
	return nil
}
