package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/dtos"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/services"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

// AdminController serves the moderation endpoints. Routes are mounted behind
// AdminAuthMiddleware.
type AdminController struct {
	adminService *services.AdminService
	validate     *validator.Validate
}

func NewAdminController(s *services.AdminService) *AdminController {
	return &AdminController{adminService: s, validate: validator.New()}
}

// GET /api/admin/owners/pending
func (c *AdminController) PendingOwnersHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := c.adminService.PendingOwners(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// POST /api/admin/owners/{id}/approve
func (c *AdminController) ApproveOwnerHandler(w http.ResponseWriter, r *http.Request) {
	adminID, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	ownerID, ok := pathUUID(w, r)
	if !ok {
		return
	}
	owner, err := c.adminService.ApproveOwner(r.Context(), adminID, ownerID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.Logger.WithField("owner_id", ownerID).Info("Owner approved")
	utils.RespondWithJSON(w, http.StatusOK, owner)
}

// DELETE /api/admin/flats/{id}
func (c *AdminController) DeleteFlatHandler(w http.ResponseWriter, r *http.Request) {
	adminID, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	flatID, ok := pathUUID(w, r)
	if !ok {
		return
	}
	if err := c.adminService.DeleteFlat(r.Context(), adminID, flatID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Flat deleted"})
}

// POST /api/admin/broadcast
func (c *AdminController) BroadcastHandler(w http.ResponseWriter, r *http.Request) {
	adminID, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req dtos.BroadcastRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	resp, err := c.adminService.Broadcast(r.Context(), adminID, req.Message)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/admin/stats
func (c *AdminController) StatsHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := c.adminService.Stats(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/admin/audit-logs?limit=
func (c *AdminController) AuditLogsHandler(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid limit", nil, err)
			return
		}
		limit = n
	}
	resp, err := c.adminService.AuditLogs(r.Context(), limit)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
