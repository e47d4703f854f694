package services

import (
	"fmt"
	"testing"

	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/constants"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/dtos"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssistantDisabledWithoutKey(t *testing.T) {
	s := NewAssistantService("")
	assert.False(t, s.Enabled())

	_, err := s.Reply(t.Context(), &dtos.AssistantChatRequest{Message: "Any 2BHKs in Pune?"})
	requireAppError(t, err, 503, utils.ErrCodeServiceDisabled)
}

func TestBuildAssistantMessages_TrimsHistory(t *testing.T) {
	history := make([]dtos.AssistantTurn, 0, constants.AssistantMaxHistory+5)
	for i := 0; i < constants.AssistantMaxHistory+5; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		history = append(history, dtos.AssistantTurn{Role: role, Content: fmt.Sprintf("turn %d", i)})
	}

	msgs := buildAssistantMessages(&dtos.AssistantChatRequest{Message: "latest", History: history})
	require.Len(t, msgs, constants.AssistantMaxHistory+2)

	require.NotNil(t, msgs[0].OfSystem)
	assert.Equal(t, constants.AssistantSystemPrompt, msgs[0].OfSystem.Content.OfString.Value)

	// The five oldest turns are dropped; turn 5 is an assistant turn.
	require.NotNil(t, msgs[1].OfAssistant)
	assert.Equal(t, "turn 5", msgs[1].OfAssistant.Content.OfString.Value)

	last := msgs[len(msgs)-1]
	require.NotNil(t, last.OfUser)
	assert.Equal(t, "latest", last.OfUser.Content.OfString.Value)
}
