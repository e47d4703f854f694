package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
)

// InboxEntry is a notification as seen from one user's inbox.
type InboxEntry struct {
	Notification models.Notification
	// Flat is nil when the notification has no flat or the flat was deleted.
	Flat *models.Flat
}

// NotificationRepository creates notifications and fans them out to inboxes
// (user_notifications). Every create-and-fan-out runs in one transaction.
type NotificationRepository interface {
	CreateForUsers(ctx context.Context, n *models.Notification, recipients []uuid.UUID) error
	// BroadcastToRole fans out to every user with role; nil means all users.
	// Broadcasts that reach nobody store nothing.
	BroadcastToRole(ctx context.Context, n *models.Notification, role *models.Role) (int64, error)
	// BroadcastToFavoriters fans out to every user who favourited flatID.
	BroadcastToFavoriters(ctx context.Context, n *models.Notification, flatID uuid.UUID) (int64, error)

	ListForUser(ctx context.Context, userID uuid.UUID) ([]*InboxEntry, error)
	// RemoveFromInbox reports false when the notification is not in the
	// user's inbox. The notification itself is deleted once no inbox holds it.
	RemoveFromInbox(ctx context.Context, userID, notificationID uuid.UUID) (bool, error)
}

type notificationRepo struct {
	db DB
}

func NewNotificationRepository(db DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) CreateForUsers(ctx context.Context, n *models.Notification, recipients []uuid.UUID) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		return insertNotification(ctx, tx, n, recipients)
	})
}

func (r *notificationRepo) BroadcastToRole(ctx context.Context, n *models.Notification, role *models.Role) (int64, error) {
	sql := `
        INSERT INTO user_notifications (user_id, notification_id, created_at)
        SELECT id, $1, NOW() FROM users`
	args := []any{n.ID}
	if role != nil {
		sql += ` WHERE role=$2`
		args = append(args, string(*role))
	}
	sql += ` ON CONFLICT DO NOTHING`
	return r.broadcast(ctx, n, sql, args...)
}

func (r *notificationRepo) BroadcastToFavoriters(ctx context.Context, n *models.Notification, flatID uuid.UUID) (int64, error) {
	return r.broadcast(ctx, n, `
        INSERT INTO user_notifications (user_id, notification_id, created_at)
        SELECT user_id, $1, NOW() FROM favorites WHERE flat_id=$2
        ON CONFLICT DO NOTHING`, n.ID, flatID)
}

func (r *notificationRepo) broadcast(ctx context.Context, n *models.Notification, fanOut string, args ...any) (int64, error) {
	var delivered int64
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := insertNotification(ctx, tx, n, nil); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, fanOut, args...)
		if err != nil {
			return err
		}
		delivered = tag.RowsAffected()
		if delivered > 0 {
			return nil
		}
		_, err = tx.Exec(ctx, `DELETE FROM notifications WHERE id=$1`, n.ID)
		return err
	})
	return delivered, err
}

func (r *notificationRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]*InboxEntry, error) {
	rows, err := r.db.Query(ctx, `
        SELECT n.id, n.flat_id, n.message, n.type, n.created_at
        FROM user_notifications un
        JOIN notifications n ON n.id = un.notification_id
        WHERE un.user_id=$1
        ORDER BY n.created_at DESC
    `, userID)
	if err != nil {
		return nil, err
	}

	out := []*InboxEntry{}
	flatIDs := map[uuid.UUID]struct{}{}
	for rows.Next() {
		var (
			e   InboxEntry
			typ string
		)
		if err := rows.Scan(&e.Notification.ID, &e.Notification.FlatID, &e.Notification.Message, &typ, &e.Notification.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		e.Notification.Type = models.NotificationType(typ)
		if e.Notification.FlatID != nil {
			flatIDs[*e.Notification.FlatID] = struct{}{}
		}
		out = append(out, &e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(flatIDs) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, 0, len(flatIDs))
	for id := range flatIDs {
		ids = append(ids, id)
	}
	flats, err := queryFlats(ctx, r.db, baseSelectFlat()+" WHERE f.id = ANY($1)", ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*models.Flat, len(flats))
	for _, f := range flats {
		byID[f.ID] = f
	}
	for _, e := range out {
		if e.Notification.FlatID != nil {
			e.Flat = byID[*e.Notification.FlatID]
		}
	}
	return out, nil
}

func (r *notificationRepo) RemoveFromInbox(ctx context.Context, userID, notificationID uuid.UUID) (bool, error) {
	var removed bool
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
            DELETE FROM user_notifications WHERE user_id=$1 AND notification_id=$2
        `, userID, notificationID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		removed = true

		// Serialise collectors of the same notification. The NOT EXISTS below
		// runs after the lock is granted, so it sees every committed removal.
		var locked uuid.UUID
		err = tx.QueryRow(ctx, `SELECT id FROM notifications WHERE id=$1 FOR UPDATE`, notificationID).Scan(&locked)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
            DELETE FROM notifications n
            WHERE n.id=$1
              AND NOT EXISTS (SELECT 1 FROM user_notifications un WHERE un.notification_id = n.id)
        `, notificationID)
		return err
	})
	return removed, err
}

// insertNotification writes the notification row plus one inbox row per
// recipient using the caller's transaction.
func insertNotification(ctx context.Context, db DB, n *models.Notification, recipients []uuid.UUID) error {
	if !n.Type.Valid() {
		return errors.New("invalid notification type")
	}
	err := db.QueryRow(ctx, `
        INSERT INTO notifications (id, flat_id, message, type, created_at)
        VALUES ($1,$2,$3,$4, NOW())
        RETURNING created_at
    `, n.ID, n.FlatID, n.Message, string(n.Type)).Scan(&n.CreatedAt)
	if err != nil {
		return err
	}
	for _, uid := range recipients {
		if _, err := db.Exec(ctx, `
            INSERT INTO user_notifications (user_id, notification_id, created_at)
            VALUES ($1, $2, NOW())
            ON CONFLICT DO NOTHING
        `, uid, n.ID); err != nil {
			return err
		}
	}
	return nil
}
