package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/constants"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/dtos"
	internal_utils "github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/utils"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-repositories"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

// Actor is the authenticated caller of a mutating flat operation.
type Actor struct {
	ID   uuid.UUID
	Role models.Role
}

// FlatEvent is the payload of flat.* domain events.
type FlatEvent struct {
	FlatID  uuid.UUID `json:"flatId"`
	OwnerID uuid.UUID `json:"ownerId"`
	Title   string    `json:"title"`
	Price   int64     `json:"price"`
}

type FlatService struct {
	flats    repositories.FlatRepository
	ratings  repositories.RatingRepository
	users    repositories.UserRepository
	notifier *NotificationService
	geocoder Geocoder
	cache    *ListingCache
	images   ImageStore
	events   EventPublisher
}

func NewFlatService(
	flats repositories.FlatRepository,
	ratings repositories.RatingRepository,
	users repositories.UserRepository,
	notifier *NotificationService,
	geocoder Geocoder,
	cache *ListingCache,
	images ImageStore,
	events EventPublisher,
) *FlatService {
	return &FlatService{
		flats:    flats,
		ratings:  ratings,
		users:    users,
		notifier: notifier,
		geocoder: geocoder,
		cache:    cache,
		images:   images,
		events:   events,
	}
}

func parseAmenities(in []string) ([]models.Amenity, error) {
	out := make([]models.Amenity, 0, len(in))
	for _, s := range in {
		a, err := models.ParseAmenity(s)
		if err != nil {
			return nil, err
		}
		if !utils.Contains(out, a) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Create publishes a listing for an approved owner (or an admin) and
// broadcasts it to every buyer.
func (s *FlatService) Create(ctx context.Context, actor Actor, req *dtos.CreateFlatRequest) (*models.Flat, error) {
	owner, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, utils.NewInternal("Failed to load user", err)
	}
	if owner == nil {
		return nil, utils.NewNotFound("User not found", internal_utils.ErrNotFound)
	}
	if !owner.CanPublish() {
		if owner.Role.CanList() {
			return nil, &utils.AppError{
				StatusCode: 403,
				Code:       utils.ErrCodeOwnerNotApproved,
				Message:    "Your account is awaiting admin approval",
				Err:        internal_utils.ErrOwnerNotApproved,
			}
		}
		return nil, utils.NewForbidden("Only owners can list flats")
	}

	flatType, err := models.ParseFlatType(req.Type)
	if err != nil {
		return nil, utils.NewBadRequest(utils.ErrCodeValidation, err.Error(), err)
	}
	amenities, err := parseAmenities(req.Amenities)
	if err != nil {
		return nil, utils.NewBadRequest(utils.ErrCodeValidation, err.Error(), err)
	}

	addr, err := s.resolveAddress(ctx, &req.Location)
	if err != nil {
		return nil, err
	}

	images := append([]string{}, req.Images...)
	mainImage := req.MainImage
	if mainImage == "" && len(images) > 0 {
		mainImage = images[0]
	}
	flat := &models.Flat{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Price:       req.Price,
		Type:        flatType,
		OwnerID:     owner.ID,
		MainImage:   mainImage,
		Images:      images,
		Amenities:   amenities,
		BHKs:        req.BHKs,
		Area:        req.Area,
		Location:    addr,
	}
	if err := s.flats.CreateWithAddress(ctx, flat); err != nil {
		return nil, utils.NewInternal("Failed to create flat", err)
	}
	utils.Logger.WithField("flat_id", flat.ID).Info("Flat listed")

	s.invalidateCache(ctx)
	if n, err := s.notifier.NotifyNewListing(ctx, flat); err != nil {
		utils.Logger.WithError(err).Warn("Failed to broadcast new listing")
	} else {
		utils.Logger.Debugf("New listing broadcast to %d buyers", n)
	}
	publishBestEffort(ctx, s.events, constants.EventFlatCreated, newFlatEvent(flat))
	return flat, nil
}

func newFlatEvent(f *models.Flat) FlatEvent {
	return FlatEvent{FlatID: f.ID, OwnerID: f.OwnerID, Title: f.Title, Price: f.Price}
}

// resolveAddress geocodes the address when coordinates are missing and
// stamps its time zone.
func (s *FlatService) resolveAddress(ctx context.Context, in *dtos.AddressInput) (*models.Address, error) {
	addr := &models.Address{
		ID:         uuid.New(),
		Address:    strings.TrimSpace(in.Address),
		City:       strings.TrimSpace(in.City),
		State:      strings.TrimSpace(in.State),
		Country:    strings.TrimSpace(in.Country),
		PostalCode: strings.TrimSpace(in.PostalCode),
		Landmark:   in.Landmark,
	}
	if in.Latitude != nil && in.Longitude != nil {
		addr.Latitude, addr.Longitude = *in.Latitude, *in.Longitude
	} else {
		lat, lng, err := s.geocoder.Geocode(ctx, FormatAddress(addr))
		if err != nil {
			return nil, utils.NewBadRequest(utils.ErrCodeValidation,
				"Could not locate the address; provide latitude and longitude", err)
		}
		addr.Latitude, addr.Longitude = lat, lng
	}
	if !internal_utils.ValidCoordinates(addr.Latitude, addr.Longitude) {
		return nil, utils.NewBadRequest(utils.ErrCodeValidation, "Invalid coordinates", nil)
	}
	addr.TimeZone = TimeZoneFor(addr.Latitude, addr.Longitude)
	return addr, nil
}

func (s *FlatService) invalidateCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		utils.Logger.WithError(err).Warn("Failed to invalidate listing cache")
	}
}

func listCacheParams(q *dtos.ListFlatsQuery) map[string]string {
	p := map[string]string{
		"city":   strings.ToLower(q.City),
		"type":   q.Type,
		"limit":  strconv.Itoa(q.Limit),
		"offset": strconv.Itoa(q.Offset),
	}
	if q.MinPrice != nil {
		p["minPrice"] = strconv.FormatInt(*q.MinPrice, 10)
	}
	if q.MaxPrice != nil {
		p["maxPrice"] = strconv.FormatInt(*q.MaxPrice, 10)
	}
	if q.BHKs != nil {
		p["bhks"] = strconv.Itoa(*q.BHKs)
	}
	if q.Lat != nil && q.Lng != nil && q.RadiusKm != nil {
		p["lat"] = strconv.FormatFloat(*q.Lat, 'f', 5, 64)
		p["lng"] = strconv.FormatFloat(*q.Lng, 'f', 5, 64)
		p["radiusKm"] = strconv.FormatFloat(*q.RadiusKm, 'f', 3, 64)
	}
	return p
}

// List searches flats, optionally within radiusKm of (lat, lng). Results are
// served from the listing cache when present.
func (s *FlatService) List(ctx context.Context, q *dtos.ListFlatsQuery) (*dtos.ListFlatsResponse, error) {
	if q.Limit <= 0 {
		q.Limit = constants.DefaultListLimit
	}
	if q.Limit > constants.MaxListLimit {
		q.Limit = constants.MaxListLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	filter := repositories.FlatFilter{
		City:     q.City,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		BHKs:     q.BHKs,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if q.Type != "" {
		t, err := models.ParseFlatType(q.Type)
		if err != nil {
			return nil, utils.NewBadRequest(utils.ErrCodeValidation, err.Error(), err)
		}
		filter.Type = &t
	}
	radius := q.Lat != nil && q.Lng != nil && q.RadiusKm != nil
	if radius {
		if !internal_utils.ValidCoordinates(*q.Lat, *q.Lng) || *q.RadiusKm <= 0 {
			return nil, utils.NewBadRequest(utils.ErrCodeValidation, "Invalid lat, lng or radiusKm", nil)
		}
		// Distance is applied in memory, so page after filtering.
		filter.Limit, filter.Offset = constants.MaxListLimit, 0
	}

	params := listCacheParams(q)
	var cached dtos.ListFlatsResponse
	if hit, err := s.cache.Get(ctx, params, &cached); err != nil {
		utils.Logger.WithError(err).Warn("Listing cache read failed")
	} else if hit {
		return &cached, nil
	}

	flats, err := s.flats.List(ctx, filter)
	if err != nil {
		return nil, utils.NewInternal("Failed to list flats", err)
	}
	if radius {
		flats = internal_utils.WithinRadius(flats, *q.Lat, *q.Lng, *q.RadiusKm)
		flats = page(flats, q.Offset, q.Limit)
	}
	if flats == nil {
		flats = []*models.Flat{}
	}

	resp := &dtos.ListFlatsResponse{Flats: flats, Count: len(flats)}
	if err := s.cache.Set(ctx, params, resp); err != nil {
		utils.Logger.WithError(err).Warn("Listing cache write failed")
	}
	return resp, nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return items[:0]
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// Get returns the flat with its ratings and average score.
func (s *FlatService) Get(ctx context.Context, id uuid.UUID) (*dtos.FlatDetail, error) {
	flat, err := s.loadFlat(ctx, id)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratings.ListByFlat(ctx, id)
	if err != nil {
		return nil, utils.NewInternal("Failed to load ratings", err)
	}
	avg, count, err := s.ratings.Average(ctx, id)
	if err != nil {
		return nil, utils.NewInternal("Failed to load ratings", err)
	}
	if ratings == nil {
		ratings = []*models.Rating{}
	}
	return &dtos.FlatDetail{Flat: flat, Ratings: ratings, AverageRating: avg, RatingCount: count}, nil
}

func (s *FlatService) loadFlat(ctx context.Context, id uuid.UUID) (*models.Flat, error) {
	flat, err := s.flats.GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewInternal("Failed to load flat", err)
	}
	if flat == nil {
		return nil, utils.NewNotFound("Flat not found", internal_utils.ErrNotFound)
	}
	return flat, nil
}

// loadOwned loads the flat and checks the actor owns it or is an admin.
func (s *FlatService) loadOwned(ctx context.Context, actor Actor, id uuid.UUID) (*models.Flat, error) {
	flat, err := s.loadFlat(ctx, id)
	if err != nil {
		return nil, err
	}
	if flat.OwnerID != actor.ID && !actor.Role.IsAdmin() {
		return nil, utils.NewForbidden("You do not own this flat")
	}
	return flat, nil
}

// Update applies the changed fields. Lowering the price notifies everyone
// who favourited the flat.
func (s *FlatService) Update(ctx context.Context, actor Actor, id uuid.UUID, req *dtos.UpdateFlatRequest) (*models.Flat, error) {
	if _, err := s.loadOwned(ctx, actor, id); err != nil {
		return nil, err
	}

	var flatType *models.FlatType
	if req.Type != nil {
		t, err := models.ParseFlatType(*req.Type)
		if err != nil {
			return nil, utils.NewBadRequest(utils.ErrCodeValidation, err.Error(), err)
		}
		flatType = &t
	}
	var amenities []models.Amenity
	if req.Amenities != nil {
		a, err := parseAmenities(req.Amenities)
		if err != nil {
			return nil, utils.NewBadRequest(utils.ErrCodeValidation, err.Error(), err)
		}
		amenities = a
	}

	var (
		updated  *models.Flat
		oldPrice int64
	)
	err := s.flats.UpdateWithRetry(ctx, id, func(f *models.Flat) error {
		oldPrice = f.Price
		if req.Title != nil {
			f.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			f.Description = *req.Description
		}
		if req.Price != nil {
			f.Price = *req.Price
		}
		if flatType != nil {
			f.Type = *flatType
		}
		if req.MainImage != nil {
			f.MainImage = *req.MainImage
		}
		if amenities != nil {
			f.Amenities = amenities
		}
		if req.BHKs != nil {
			f.BHKs = *req.BHKs
		}
		if req.Area != nil {
			f.Area = *req.Area
		}
		updated = f
		return nil
	})
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, utils.NewNotFound("Flat not found", internal_utils.ErrNotFound)
	case errors.Is(err, utils.ErrRowVersionConflict):
		return nil, utils.NewConflict(utils.ErrCodeRowVersionConflict, "Flat was modified concurrently", nil, err)
	case err != nil:
		return nil, utils.NewInternal("Failed to update flat", err)
	}

	s.invalidateCache(ctx)
	if updated.Price < oldPrice {
		if n, err := s.notifier.NotifyPriceDrop(ctx, updated, oldPrice); err != nil {
			utils.Logger.WithError(err).Warn("Failed to send price drop notifications")
		} else {
			utils.Logger.WithField("flat_id", updated.ID).Debugf("Price drop sent to %d users", n)
		}
	}
	return updated, nil
}

// Delete removes a flat the actor owns (or any flat, for admins).
func (s *FlatService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	flat, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return err
	}
	return s.remove(ctx, flat)
}

// remove deletes the flat; the schema cascades favourites, bookings and
// ratings and detaches notifications.
func (s *FlatService) remove(ctx context.Context, flat *models.Flat) error {
	if err := s.flats.Delete(ctx, flat.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NewNotFound("Flat not found", internal_utils.ErrNotFound)
		}
		return utils.NewInternal("Failed to delete flat", err)
	}
	utils.Logger.WithField("flat_id", flat.ID).Info("Flat deleted")
	s.invalidateCache(ctx)
	publishBestEffort(ctx, s.events, constants.EventFlatDeleted, newFlatEvent(flat))
	return nil
}

// Rate records the user's score for the flat, replacing an earlier one.
func (s *FlatService) Rate(ctx context.Context, userID, flatID uuid.UUID, req *dtos.RateFlatRequest) (*models.Rating, error) {
	flat, err := s.loadFlat(ctx, flatID)
	if err != nil {
		return nil, err
	}
	if flat.OwnerID == userID {
		return nil, utils.NewForbidden("Owners cannot rate their own flats")
	}
	rt := &models.Rating{
		ID:      uuid.New(),
		FlatID:  flatID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: strings.TrimSpace(req.Comment),
	}
	if rt.Rating < models.MinRating || rt.Rating > models.MaxRating {
		return nil, utils.NewBadRequest(utils.ErrCodeValidation,
			fmt.Sprintf("rating must be between %d and %d", models.MinRating, models.MaxRating), nil)
	}
	if err := s.ratings.Upsert(ctx, rt); err != nil {
		return nil, utils.NewInternal("Failed to save rating", err)
	}
	return rt, nil
}

// UploadImage stores the photo and appends its URL to the flat.
func (s *FlatService) UploadImage(
	ctx context.Context,
	actor Actor,
	flatID uuid.UUID,
	filename string,
	r io.Reader,
	size int64,
	contentType string,
) (*dtos.ImageUploadResponse, error) {
	if s.images == nil {
		return nil, &utils.AppError{
			StatusCode: 503,
			Code:       utils.ErrCodeServiceDisabled,
			Message:    "Image uploads are not configured",
			Err:        internal_utils.ErrServiceUnavailable,
		}
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, utils.NewBadRequest(utils.ErrCodeValidation, "Only image uploads are allowed", nil)
	}
	if _, err := s.loadOwned(ctx, actor, flatID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("flats/%s/%s%s", flatID, uuid.NewString(), strings.ToLower(path.Ext(filename)))
	url, err := s.images.Put(ctx, key, r, size, contentType)
	if err != nil {
		return nil, &utils.AppError{
			StatusCode: 502,
			Code:       utils.ErrCodeExternalService,
			Message:    "Failed to store image",
			Err:        err,
		}
	}
	if err := s.flats.AppendImage(ctx, flatID, url); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NewNotFound("Flat not found", internal_utils.ErrNotFound)
		}
		return nil, utils.NewInternal("Failed to save image", err)
	}
	s.invalidateCache(ctx)

	flat, err := s.loadFlat(ctx, flatID)
	if err != nil {
		return nil, err
	}
	return &dtos.ImageUploadResponse{URL: url, Flat: flat}, nil
}
