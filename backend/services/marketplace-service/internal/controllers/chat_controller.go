package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/dtos"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/services"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

type ChatController struct {
	chatService *services.ChatService
	validate    *validator.Validate
}

func NewChatController(s *services.ChatService) *ChatController {
	return &ChatController{chatService: s, validate: validator.New()}
}

// POST /api/chat
func (c *ChatController) StartChatHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.StartChatRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	userID := mustUUID(req.UserID)
	if !authorizeSubject(w, r, userID) {
		return
	}
	resp, err := c.chatService.Start(r.Context(), userID, mustUUID(req.OwnerID))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// PUT /api/chat/send-message
func (c *ChatController) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.SendMessageRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	senderID := mustUUID(req.SenderID)
	if !authorizeSubject(w, r, senderID) {
		return
	}
	resp, err := c.chatService.SendMessage(r.Context(), mustUUID(req.ChatID), senderID, req.Content)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/chat/{id}
func (c *ChatController) GetChatHandler(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requireUser(w, r)
	if !ok {
		return
	}
	chatID, ok := pathUUID(w, r)
	if !ok {
		return
	}
	resp, err := c.chatService.Get(r.Context(), chatID, userID, role)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/chats
func (c *ChatController) ListChatsHandler(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := c.chatService.ListForUser(r.Context(), userID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
