package testhelpers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-repositories"
)

// insertNotification stores n and its inbox rows. Caller holds mu.
func (s *MemStore) insertNotification(n *models.Notification, recipients []uuid.UUID) {
	n.CreatedAt = s.now()
	c := *n
	s.notifications[n.ID] = &c
	for _, uid := range recipients {
		key := pairKey{uid, n.ID}
		if _, ok := s.inbox[key]; !ok {
			s.inbox[key] = n.CreatedAt
		}
	}
}

// broadcast stores n only when it reaches someone. Caller holds mu.
func (s *MemStore) broadcast(n *models.Notification, recipients []uuid.UUID) int64 {
	if len(recipients) == 0 {
		n.CreatedAt = s.now()
		return 0
	}
	s.insertNotification(n, recipients)
	return int64(len(recipients))
}

type memNotificationRepo struct{ s *MemStore }

func (r *memNotificationRepo) CreateForUsers(_ context.Context, n *models.Notification, recipients []uuid.UUID) error {
	if !n.Type.Valid() {
		return errors.New("invalid notification type")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.insertNotification(n, recipients)
	return nil
}

func (r *memNotificationRepo) BroadcastToRole(_ context.Context, n *models.Notification, role *models.Role) (int64, error) {
	if !n.Type.Valid() {
		return 0, errors.New("invalid notification type")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var recipients []uuid.UUID
	for _, u := range r.s.users {
		if role == nil || u.Role == *role {
			recipients = append(recipients, u.ID)
		}
	}
	return r.s.broadcast(n, recipients), nil
}

func (r *memNotificationRepo) BroadcastToFavoriters(_ context.Context, n *models.Notification, flatID uuid.UUID) (int64, error) {
	if !n.Type.Valid() {
		return 0, errors.New("invalid notification type")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var recipients []uuid.UUID
	for k := range r.s.favorites {
		if k[1] == flatID {
			recipients = append(recipients, k[0])
		}
	}
	return r.s.broadcast(n, recipients), nil
}

func (r *memNotificationRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]*repositories.InboxEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*repositories.InboxEntry{}
	for k := range r.s.inbox {
		if k[0] != userID {
			continue
		}
		n, ok := r.s.notifications[k[1]]
		if !ok {
			continue
		}
		e := &repositories.InboxEntry{Notification: *n}
		if n.FlatID != nil {
			if f, ok := r.s.flats[*n.FlatID]; ok {
				e.Flat = copyFlat(f)
			}
		}
		out = append(out, e)
	}
	sortBy(out, func(e *repositories.InboxEntry) int64 { return e.Notification.CreatedAt.UnixNano() }, true)
	return out, nil
}

func (r *memNotificationRepo) RemoveFromInbox(_ context.Context, userID, notificationID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := pairKey{userID, notificationID}
	if _, ok := r.s.inbox[key]; !ok {
		return false, nil
	}
	delete(r.s.inbox, key)
	for k := range r.s.inbox {
		if k[1] == notificationID {
			return true, nil
		}
	}
	delete(r.s.notifications, notificationID)
	return true, nil
}
