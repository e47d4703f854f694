package services

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/constants"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/dtos"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

// AssistantService wraps the OpenAI client. If client is nil the assistant is
// disabled and Reply returns a 503.
type AssistantService struct {
	client *openai.Client
	model  shared.ChatModel
}

// NewAssistantService creates the service. Pass an empty apiKey to disable calls.
func NewAssistantService(apiKey string) *AssistantService {
	if apiKey == "" {
		return &AssistantService{}
	}
	c := openai.NewClient(option.WithAPIKey(apiKey))
	return &AssistantService{client: &c, model: shared.ChatModelGPT4oMini}
}

func (s *AssistantService) Enabled() bool { return s.client != nil }

func (s *AssistantService) Reply(ctx context.Context, req *dtos.AssistantChatRequest) (*dtos.AssistantChatResponse, error) {
	if s.client == nil {
		return nil, &utils.AppError{
			StatusCode: 503,
			Code:       utils.ErrCodeServiceDisabled,
			Message:    "Assistant is not available",
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    s.model,
		Messages: buildAssistantMessages(req),
	}
	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, &utils.AppError{
			StatusCode: 502,
			Code:       utils.ErrCodeExternalService,
			Message:    "Assistant request failed",
			Err:        fmt.Errorf("%w: openai: %v", utils.ErrExternalServiceFailure, err),
		}
	}
	if len(resp.Choices) == 0 {
		return nil, utils.NewInternal("Assistant returned no answer", fmt.Errorf("openai: empty choices"))
	}
	return &dtos.AssistantChatResponse{Reply: strings.TrimSpace(resp.Choices[0].Message.Content)}, nil
}

// buildAssistantMessages keeps the system prompt first and only the most
// recent history turns.
func buildAssistantMessages(req *dtos.AssistantChatRequest) []openai.ChatCompletionMessageParamUnion {
	history := req.History
	if len(history) > constants.AssistantMaxHistory {
		history = history[len(history)-constants.AssistantMaxHistory:]
	}

	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	msgs = append(msgs, openai.SystemMessage(constants.AssistantSystemPrompt))
	for _, turn := range history {
		switch turn.Role {
		case "assistant":
			msgs = append(msgs, openai.AssistantMessage(turn.Content))
		default:
			msgs = append(msgs, openai.UserMessage(turn.Content))
		}
	}
	msgs = append(msgs, openai.UserMessage(req.Message))
	return msgs
}
