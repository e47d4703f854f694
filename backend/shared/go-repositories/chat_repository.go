package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
)

// ChatRepository stores two-party threads keyed on the ordered participant
// pair, so find-or-create converges on a single row under concurrency.
type ChatRepository interface {
	// FindOrCreate reports created=true only for the caller whose insert won.
	FindOrCreate(ctx context.Context, a, b uuid.UUID) (chat *models.Chat, created bool, err error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Chat, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Chat, error)
	// AppendMessage inserts m and returns the chat's full history in order.
	AppendMessage(ctx context.Context, m *models.ChatMessage) ([]models.ChatMessage, error)
}

type chatRepo struct {
	db DB
}

func NewChatRepository(db DB) ChatRepository {
	return &chatRepo{db: db}
}

func (r *chatRepo) FindOrCreate(ctx context.Context, a, b uuid.UUID) (*models.Chat, bool, error) {
	low, high := models.OrderedPair(a, b)

	tag, err := r.db.Exec(ctx, `
        INSERT INTO chats (id, participant_low, participant_high, created_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (participant_low, participant_high) DO NOTHING
    `, uuid.New(), low, high)
	if err != nil {
		return nil, false, err
	}

	chat, err := scanChat(r.db.QueryRow(ctx, baseSelectChat()+" WHERE participant_low=$1 AND participant_high=$2", low, high))
	if err != nil {
		return nil, false, err
	}
	if chat == nil {
		return nil, false, pgx.ErrNoRows
	}
	if chat.Messages, err = listMessages(ctx, r.db, chat.ID); err != nil {
		return nil, false, err
	}
	return chat, tag.RowsAffected() == 1, nil
}

func (r *chatRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Chat, error) {
	chat, err := scanChat(r.db.QueryRow(ctx, baseSelectChat()+" WHERE id=$1", id))
	if err != nil || chat == nil {
		return nil, err
	}
	if chat.Messages, err = listMessages(ctx, r.db, chat.ID); err != nil {
		return nil, err
	}
	return chat, nil
}

func (r *chatRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Chat, error) {
	rows, err := r.db.Query(ctx, baseSelectChat()+`
        WHERE participant_low=$1 OR participant_high=$1
        ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	out := []*models.Chat{}
	for rows.Next() {
		c, err := scanChat(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, c := range out {
		if c.Messages, err = listMessages(ctx, r.db, c.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *chatRepo) AppendMessage(ctx context.Context, m *models.ChatMessage) ([]models.ChatMessage, error) {
	var history []models.ChatMessage
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
            INSERT INTO chat_messages (id, chat_id, sender_id, content, created_at)
            VALUES ($1, $2, $3, $4, clock_timestamp())
            RETURNING created_at
        `, m.ID, m.ChatID, m.SenderID, m.Content).Scan(&m.Timestamp)
		if err != nil {
			return err
		}
		history, err = listMessages(ctx, tx, m.ChatID)
		return err
	})
	return history, err
}

func listMessages(ctx context.Context, db DB, chatID uuid.UUID) ([]models.ChatMessage, error) {
	rows, err := db.Query(ctx, `
        SELECT id, chat_id, sender_id, content, created_at
        FROM chat_messages WHERE chat_id=$1
        ORDER BY created_at, id
    `, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ChatMessage{}
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Content, &m.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func baseSelectChat() string {
	return `SELECT id, participant_low, participant_high, created_at FROM chats`
}

func scanChat(row pgx.Row) (*models.Chat, error) {
	var c models.Chat
	if err := row.Scan(&c.ID, &c.ParticipantLow, &c.ParticipantHigh, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
