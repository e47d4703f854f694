package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/dtos"
	internal_utils "github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/utils"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-repositories"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

type ChatService struct {
	chats repositories.ChatRepository
	users repositories.UserRepository
}

func NewChatService(chats repositories.ChatRepository, users repositories.UserRepository) *ChatService {
	return &ChatService{chats: chats, users: users}
}

// Start finds the chat between the two users or creates it. The pair is
// unordered, so (a, b) and (b, a) resolve to the same chat.
func (s *ChatService) Start(ctx context.Context, userID, otherID uuid.UUID) (*dtos.StartChatResponse, error) {
	if userID == otherID {
		return nil, utils.NewBadRequest(utils.ErrCodeValidation, "Cannot start a chat with yourself", internal_utils.ErrSelfChat)
	}
	users, err := s.users.GetByIDs(ctx, []uuid.UUID{userID, otherID})
	if err != nil {
		return nil, utils.NewInternal("Failed to load users", err)
	}
	if users[userID] == nil || users[otherID] == nil {
		return nil, utils.NewNotFound("User not found", internal_utils.ErrNotFound)
	}

	chat, created, err := s.chats.FindOrCreate(ctx, userID, otherID)
	if err != nil {
		return nil, utils.NewInternal("Failed to start chat", err)
	}
	msg := "Chat found"
	if created {
		msg = "Chat created"
		utils.Logger.WithField("chat_id", chat.ID).Debug("Created chat")
	}
	return &dtos.StartChatResponse{Chat: dtos.NewChatView(chat), Message: msg}, nil
}

// SendMessage appends to the chat and returns the full history.
func (s *ChatService) SendMessage(ctx context.Context, chatID, senderID uuid.UUID, content string) (*dtos.SendMessageResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, utils.NewBadRequest(utils.ErrCodeMissingFields, "Message content is required", internal_utils.ErrMissingFields)
	}
	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		return nil, utils.NewInternal("Failed to load chat", err)
	}
	if chat == nil {
		return nil, utils.NewNotFound("Chat not found", internal_utils.ErrNotFound)
	}
	if !chat.HasParticipant(senderID) {
		return nil, utils.NewForbidden("Sender is not part of this chat")
	}

	history, err := s.chats.AppendMessage(ctx, &models.ChatMessage{
		ID:       uuid.New(),
		ChatID:   chat.ID,
		SenderID: senderID,
		Content:  content,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.NewNotFound("Chat not found", internal_utils.ErrNotFound)
	}
	if err != nil {
		return nil, utils.NewInternal("Failed to send message", err)
	}
	return &dtos.SendMessageResponse{Message: history}, nil
}

// Get returns the chat if the viewer takes part in it or is an admin.
func (s *ChatService) Get(ctx context.Context, chatID, viewerID uuid.UUID, viewerRole models.Role) (*dtos.ChatView, error) {
	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		return nil, utils.NewInternal("Failed to load chat", err)
	}
	if chat == nil {
		return nil, utils.NewNotFound("Chat not found", internal_utils.ErrNotFound)
	}
	if !chat.HasParticipant(viewerID) && !viewerRole.IsAdmin() {
		return nil, utils.NewForbidden("You are not part of this chat")
	}
	return dtos.NewChatView(chat), nil
}

func (s *ChatService) ListForUser(ctx context.Context, userID uuid.UUID) (*dtos.ListChatsResponse, error) {
	chats, err := s.chats.ListForUser(ctx, userID)
	if err != nil {
		return nil, utils.NewInternal("Failed to load chats", err)
	}
	out := make([]*dtos.ChatView, 0, len(chats))
	for _, c := range chats {
		out = append(out, dtos.NewChatView(c))
	}
	return &dtos.ListChatsResponse{Chats: out}, nil
}
