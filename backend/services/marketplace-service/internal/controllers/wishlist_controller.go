package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/dtos"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/services"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

type WishlistController struct {
	wishlistService *services.WishlistService
	validate        *validator.Validate
}

func NewWishlistController(s *services.WishlistService) *WishlistController {
	return &WishlistController{wishlistService: s, validate: validator.New()}
}

// POST /api/wishlist/add
func (c *WishlistController) AddHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.WishlistRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	userID := mustUUID(req.User)
	if !authorizeSubject(w, r, userID) {
		return
	}
	if err := c.wishlistService.Add(r.Context(), userID, mustUUID(req.ListingID)); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Added to wishlist"})
}

// POST /api/wishlist/remove
func (c *WishlistController) RemoveHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.WishlistRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	userID := mustUUID(req.User)
	if !authorizeSubject(w, r, userID) {
		return
	}
	if err := c.wishlistService.Remove(r.Context(), userID, mustUUID(req.ListingID)); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Removed from wishlist"})
}

// GET /api/wishlist
func (c *WishlistController) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := c.wishlistService.List(r.Context(), userID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
