package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/dtos"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/services"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

type AssistantController struct {
	assistantService *services.AssistantService
	validate         *validator.Validate
}

func NewAssistantController(s *services.AssistantService) *AssistantController {
	return &AssistantController{assistantService: s, validate: validator.New()}
}

// POST /api/assistant/chat
func (c *AssistantController) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.AssistantChatRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	resp, err := c.assistantService.Reply(r.Context(), &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
