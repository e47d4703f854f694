package testhelpers

import (
	"context"

	"github.com/google/uuid"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
)

type memChatRepo struct{ s *MemStore }

// copyChat attaches a snapshot of the history. Caller holds mu.
func (r *memChatRepo) copyChat(c *models.Chat) *models.Chat {
	out := *c
	out.Messages = append([]models.ChatMessage{}, r.s.messages[c.ID]...)
	return &out
}

func (r *memChatRepo) FindOrCreate(_ context.Context, a, b uuid.UUID) (*models.Chat, bool, error) {
	low, high := models.OrderedPair(a, b)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey{low, high}
	if id, ok := r.s.chatPairs[key]; ok {
		return r.copyChat(r.s.chats[id]), false, nil
	}
	c := &models.Chat{
		ID:              uuid.New(),
		ParticipantLow:  low,
		ParticipantHigh: high,
		CreatedAt:       r.s.now(),
	}
	r.s.chats[c.ID] = c
	r.s.chatPairs[key] = c.ID
	return r.copyChat(c), true, nil
}

func (r *memChatRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Chat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.chats[id]; ok {
		return r.copyChat(c), nil
	}
	return nil, nil
}

func (r *memChatRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]*models.Chat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Chat{}
	for _, c := range r.s.chats {
		if c.HasParticipant(userID) {
			out = append(out, r.copyChat(c))
		}
	}
	sortBy(out, func(c *models.Chat) int64 { return c.CreatedAt.UnixNano() }, true)
	return out, nil
}

func (r *memChatRepo) AppendMessage(_ context.Context, m *models.ChatMessage) ([]models.ChatMessage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.chats[m.ChatID]; !ok {
		return nil, errNoRows
	}
	m.Timestamp = r.s.now()
	r.s.messages[m.ChatID] = append(r.s.messages[m.ChatID], *m)
	return append([]models.ChatMessage{}, r.s.messages[m.ChatID]...), nil
}

// ChatCount is the number of stored chats.
func (s *MemStore) ChatCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chats)
}

type memAuditLogRepo struct{ s *MemStore }

func (r *memAuditLogRepo) Create(_ context.Context, l *models.AdminAuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.CreatedAt = r.s.now()
	c := *l
	r.s.auditLogs = append(r.s.auditLogs, &c)
	return nil
}

func (r *memAuditLogRepo) ListRecent(_ context.Context, limit int) ([]*models.AdminAuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.AdminAuditLog{}
	for i := len(r.s.auditLogs) - 1; i >= 0 && len(out) < limit; i-- {
		c := *r.s.auditLogs[i]
		out = append(out, &c)
	}
	return out, nil
}
