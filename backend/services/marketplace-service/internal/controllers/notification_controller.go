package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/dtos"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/services"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

type NotificationController struct {
	notificationService *services.NotificationService
}

func NewNotificationController(s *services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: s}
}

// GET /api/notifications
func (c *NotificationController) ListNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := c.notificationService.List(r.Context(), userID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// DELETE /api/notifications/delete?id=
func (c *NotificationController) DeleteNotificationHandler(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	raw := r.URL.Query().Get("id")
	if raw == "" {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeMissingFields, "Notification id is required", nil)
		return
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid notification id", nil, err)
		return
	}

	if err := c.notificationService.Delete(r.Context(), userID, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Notification deleted"})
}
