package controllers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/constants"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/dtos"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/services"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

type FlatController struct {
	flatService *services.FlatService
	validate    *validator.Validate
}

func NewFlatController(s *services.FlatService) *FlatController {
	return &FlatController{flatService: s, validate: validator.New()}
}

func actorFrom(w http.ResponseWriter, r *http.Request) (services.Actor, bool) {
	userID, role, ok := requireUser(w, r)
	return services.Actor{ID: userID, Role: role}, ok
}

// POST /api/flats
func (c *FlatController) CreateFlatHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req dtos.CreateFlatRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	flat, err := c.flatService.Create(r.Context(), actor, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, flat)
}

// parseListQuery reads the search filters. Malformed numbers are reported
// rather than ignored.
func parseListQuery(q url.Values) (*dtos.ListFlatsQuery, error) {
	out := &dtos.ListFlatsQuery{City: q.Get("city"), Type: q.Get("type")}
	var err error
	parseInt64 := func(key string) *int64 {
		if v := q.Get(key); v != "" && err == nil {
			n, perr := strconv.ParseInt(v, 10, 64)
			if perr != nil {
				err = utils.NewBadRequest(utils.ErrCodeValidation, "Invalid "+key, perr)
				return nil
			}
			return &n
		}
		return nil
	}
	parseFloat := func(key string) *float64 {
		if v := q.Get(key); v != "" && err == nil {
			f, perr := strconv.ParseFloat(v, 64)
			if perr != nil {
				err = utils.NewBadRequest(utils.ErrCodeValidation, "Invalid "+key, perr)
				return nil
			}
			return &f
		}
		return nil
	}

	out.MinPrice = parseInt64("minPrice")
	out.MaxPrice = parseInt64("maxPrice")
	if n := parseInt64("bhks"); n != nil {
		b := int(*n)
		out.BHKs = &b
	}
	out.Lat = parseFloat("lat")
	out.Lng = parseFloat("lng")
	out.RadiusKm = parseFloat("radiusKm")
	if n := parseInt64("limit"); n != nil {
		out.Limit = int(*n)
	} else {
		out.Limit = constants.DefaultListLimit
	}
	if n := parseInt64("offset"); n != nil {
		out.Offset = int(*n)
	}
	return out, err
}

// GET /api/flats
func (c *FlatController) ListFlatsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r.URL.Query())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	resp, err := c.flatService.List(r.Context(), q)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/flats/{id}
func (c *FlatController) GetFlatHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}
	resp, err := c.flatService.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// PUT /api/flats/{id}
func (c *FlatController) UpdateFlatHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}
	var req dtos.UpdateFlatRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	flat, err := c.flatService.Update(r.Context(), actor, id, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, flat)
}

// DELETE /api/flats/{id}
func (c *FlatController) DeleteFlatHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}
	if err := c.flatService.Delete(r.Context(), actor, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Flat deleted"})
}

// POST /api/flats/{id}/ratings
func (c *FlatController) RateFlatHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}
	var req dtos.RateFlatRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	rating, err := c.flatService.Rate(r.Context(), actor.ID, id, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, rating)
}

// POST /api/flats/{id}/images (multipart field "image")
func (c *FlatController) UploadImageHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxImageUploadBytes)
	if err := r.ParseMultipartForm(constants.MaxImageUploadBytes); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid multipart upload", nil, err)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeMissingFields, "Image file is required", nil, err)
		return
	}
	defer file.Close()

	resp, err := c.flatService.UploadImage(r.Context(), actor, id, header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}
