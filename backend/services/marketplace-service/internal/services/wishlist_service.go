package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/dtos"
	internal_utils "github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/utils"
	shared "github.com/road2tec/girha-setu-sub000/backend/shared/go-dtos"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-repositories"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

type WishlistService struct {
	favorites repositories.FavoriteRepository
	users     repositories.UserRepository
	flats     repositories.FlatRepository
}

func NewWishlistService(
	favorites repositories.FavoriteRepository,
	users repositories.UserRepository,
	flats repositories.FlatRepository,
) *WishlistService {
	return &WishlistService{favorites: favorites, users: users, flats: flats}
}

func (s *WishlistService) ensureExists(ctx context.Context, userID, flatID uuid.UUID) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return utils.NewInternal("Failed to load user", err)
	}
	if user == nil {
		return utils.NewNotFound("User not found", internal_utils.ErrNotFound)
	}
	flat, err := s.flats.GetByID(ctx, flatID)
	if err != nil {
		return utils.NewInternal("Failed to load flat", err)
	}
	if flat == nil {
		return utils.NewNotFound("Listing not found", internal_utils.ErrNotFound)
	}
	return nil
}

// Add favourites the flat; a second add is rejected without changing state.
func (s *WishlistService) Add(ctx context.Context, userID, flatID uuid.UUID) error {
	if err := s.ensureExists(ctx, userID, flatID); err != nil {
		return err
	}
	added, err := s.favorites.Add(ctx, userID, flatID)
	if err != nil {
		return utils.NewInternal("Failed to update wishlist", err)
	}
	if !added {
		return utils.NewBadRequest(utils.ErrCodeAlreadyWishlisted, "Listing already in wishlist", internal_utils.ErrAlreadyWishlisted)
	}
	return nil
}

func (s *WishlistService) Remove(ctx context.Context, userID, flatID uuid.UUID) error {
	if err := s.ensureExists(ctx, userID, flatID); err != nil {
		return err
	}
	removed, err := s.favorites.Remove(ctx, userID, flatID)
	if err != nil {
		return utils.NewInternal("Failed to update wishlist", err)
	}
	if !removed {
		return utils.NewBadRequest(utils.ErrCodeNotWishlisted, "Listing not in wishlist", internal_utils.ErrNotWishlisted)
	}
	return nil
}

func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) (*dtos.WishlistResponse, error) {
	flats, err := s.favorites.ListFlats(ctx, userID)
	if err != nil {
		return nil, utils.NewInternal("Failed to load wishlist", err)
	}
	out := make([]*shared.FlatSummary, 0, len(flats))
	for _, f := range flats {
		out = append(out, shared.NewFlatSummary(f))
	}
	return &dtos.WishlistResponse{Wishlist: out}, nil
}
