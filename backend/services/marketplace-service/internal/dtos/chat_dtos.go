package dtos

import (
	"time"

	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
)

type StartChatRequest struct {
	UserID  string `json:"userId" validate:"required,uuid"`
	OwnerID string `json:"ownerId" validate:"required,uuid"`
}

type SendMessageRequest struct {
	ChatID   string `json:"chatId" validate:"required,uuid"`
	SenderID string `json:"senderId" validate:"required,uuid"`
	Content  string `json:"content" validate:"required,max=4000"`
}

type ChatView struct {
	ID           string               `json:"id"`
	Participants []string             `json:"participants"`
	Messages     []models.ChatMessage `json:"messages"`
	CreatedAt    time.Time            `json:"createdAt"`
}

func NewChatView(c *models.Chat) *ChatView {
	msgs := c.Messages
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}
	return &ChatView{
		ID:           c.ID.String(),
		Participants: []string{c.ParticipantLow.String(), c.ParticipantHigh.String()},
		Messages:     msgs,
		CreatedAt:    c.CreatedAt,
	}
}

type StartChatResponse struct {
	Chat    *ChatView `json:"chat"`
	Message string    `json:"message"`
}

// SendMessageResponse returns the full, ordered history.
type SendMessageResponse struct {
	Message []models.ChatMessage `json:"message"`
}

type ListChatsResponse struct {
	Chats []*ChatView `json:"chats"`
}
