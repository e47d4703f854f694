package testhelpers

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-repositories"
)

type memUserRepo struct{ s *MemStore }

func (r *memUserRepo) Create(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repositories.ErrEmailExists
		}
	}
	u.CreatedAt = r.s.now()
	u.UpdatedAt = u.CreatedAt
	u.RowVersion = 1
	r.s.users[u.ID] = copyUser(u)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return copyUser(u), nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[uuid.UUID]*models.User{}
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out[id] = copyUser(u)
		}
	}
	return out, nil
}

func (r *memUserRepo) ListByRole(_ context.Context, role models.Role) ([]*models.User, error) {
	return r.filter(func(u *models.User) bool { return u.Role == role }), nil
}

func (r *memUserRepo) ListPendingOwners(_ context.Context) ([]*models.User, error) {
	return r.filter(func(u *models.User) bool { return u.Role == models.RoleOwner && !u.IsAdminApproved }), nil
}

func (r *memUserRepo) CountByRole(_ context.Context) (map[models.Role]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[models.Role]int64{}
	for _, u := range r.s.users {
		out[u.Role]++
	}
	return out, nil
}

func (r *memUserRepo) UpdateIfVersion(_ context.Context, u *models.User, expected int64) (pgconn.CommandTag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[u.ID]
	if !ok || cur.RowVersion != expected {
		return tag(0), nil
	}
	next := copyUser(u)
	next.Email = cur.Email
	next.PasswordHash = cur.PasswordHash
	next.Role = cur.Role
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = r.s.now()
	next.RowVersion = expected + 1
	r.s.users[u.ID] = next
	return tag(1), nil
}

func (r *memUserRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.User) error) error {
	return repositories.WithRetry(ctx, 3, id.String(),
		func(ctx context.Context, id string) (*models.User, error) {
			return r.GetByID(ctx, uuid.MustParse(id))
		},
		r.UpdateIfVersion, mutate)
}

func (r *memUserRepo) filter(keep func(*models.User) bool) []*models.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.User{}
	for _, u := range r.s.users {
		if keep(u) {
			out = append(out, copyUser(u))
		}
	}
	sortBy(out, func(u *models.User) int64 { return u.CreatedAt.UnixNano() }, false)
	return out
}

type memAddressRepo struct{ s *MemStore }

func (r *memAddressRepo) Create(_ context.Context, a *models.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *a
	r.s.addresses[a.ID] = &c
	return nil
}

func (r *memAddressRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.addresses[id]; ok {
		c := *a
		return &c, nil
	}
	return nil, nil
}

func (r *memAddressRepo) Update(_ context.Context, a *models.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.addresses[a.ID]; !ok {
		return errNoRows
	}
	c := *a
	r.s.addresses[a.ID] = &c
	for _, f := range r.s.flats {
		if f.LocationID == a.ID {
			loc := c
			f.Location = &loc
		}
	}
	return nil
}
