package models

import (
	"time"

	"github.com/google/uuid"
)

// Chat is a two-party thread. The pair is stored ordered (Low < High) so the
// unordered pair is unique.
type Chat struct {
	ID              uuid.UUID     `json:"id"`
	ParticipantLow  uuid.UUID     `json:"-"`
	ParticipantHigh uuid.UUID     `json:"-"`
	CreatedAt       time.Time     `json:"created_at"`
	Messages        []ChatMessage `json:"messages"`
}

func (c *Chat) Participants() []uuid.UUID {
	return []uuid.UUID{c.ParticipantLow, c.ParticipantHigh}
}

func (c *Chat) HasParticipant(id uuid.UUID) bool {
	return c.ParticipantLow == id || c.ParticipantHigh == id
}

type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	ChatID    uuid.UUID `json:"-"`
	SenderID  uuid.UUID `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderedPair returns the two ids with the lexically smaller first.
func OrderedPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() < b.String() {
		return a, b
	}
	return b, a
}
