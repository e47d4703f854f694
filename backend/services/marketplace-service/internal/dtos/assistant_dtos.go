package dtos

type AssistantTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type AssistantChatRequest struct {
	Message string          `json:"message" validate:"required,max=4000"`
	History []AssistantTurn `json:"history" validate:"omitempty,max=50,dive"`
}

type AssistantChatResponse struct {
	Reply string `json:"reply"`
}
