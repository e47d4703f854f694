package testhelpers

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-repositories"
)

type memFlatRepo struct{ s *MemStore }

func (r *memFlatRepo) CreateWithAddress(_ context.Context, f *models.Flat) error {
	if f.Location == nil {
		return errors.New("flat location is required")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	loc := *f.Location
	r.s.addresses[loc.ID] = &loc
	f.LocationID = loc.ID
	f.CreatedAt = r.s.now()
	f.UpdatedAt = f.CreatedAt
	f.RowVersion = 1
	if f.Images == nil {
		f.Images = []string{}
	}
	r.s.flats[f.ID] = copyFlat(f)
	return nil
}

func (r *memFlatRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Flat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if f, ok := r.s.flats[id]; ok {
		return copyFlat(f), nil
	}
	return nil, nil
}

func (r *memFlatRepo) List(_ context.Context, fl repositories.FlatFilter) ([]*models.Flat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []*models.Flat{}
	for _, f := range r.s.flats {
		if fl.City != "" && (f.Location == nil || !strings.EqualFold(f.Location.City, fl.City)) {
			continue
		}
		if fl.Type != nil && f.Type != *fl.Type {
			continue
		}
		if fl.MinPrice != nil && f.Price < *fl.MinPrice {
			continue
		}
		if fl.MaxPrice != nil && f.Price > *fl.MaxPrice {
			continue
		}
		if fl.BHKs != nil && f.BHKs != *fl.BHKs {
			continue
		}
		if fl.OwnerID != nil && f.OwnerID != *fl.OwnerID {
			continue
		}
		out = append(out, copyFlat(f))
	}
	sortBy(out, func(f *models.Flat) int64 { return f.CreatedAt.UnixNano() }, true)

	if fl.Offset > 0 {
		if fl.Offset >= len(out) {
			return []*models.Flat{}, nil
		}
		out = out[fl.Offset:]
	}
	if fl.Limit > 0 && len(out) > fl.Limit {
		out = out[:fl.Limit]
	}
	return out, nil
}

func (r *memFlatRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.flats)), nil
}

func (r *memFlatRepo) UpdateIfVersion(_ context.Context, f *models.Flat, expected int64) (pgconn.CommandTag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.flats[f.ID]
	if !ok || cur.RowVersion != expected {
		return tag(0), nil
	}
	next := copyFlat(f)
	next.OwnerID = cur.OwnerID
	next.LocationID = cur.LocationID
	next.Location = cur.Location
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = r.s.now()
	next.RowVersion = expected + 1
	r.s.flats[f.ID] = next
	return tag(1), nil
}

func (r *memFlatRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Flat) error) error {
	return repositories.WithRetry(ctx, 3, id.String(),
		func(ctx context.Context, id string) (*models.Flat, error) {
			return r.GetByID(ctx, uuid.MustParse(id))
		},
		r.UpdateIfVersion, mutate)
}

func (r *memFlatRepo) AppendImage(_ context.Context, id uuid.UUID, url string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.flats[id]
	if !ok {
		return errNoRows
	}
	f.Images = append(f.Images, url)
	if f.MainImage == "" {
		f.MainImage = url
	}
	f.RowVersion++
	return nil
}

func (r *memFlatRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.flats[id]
	if !ok {
		return errNoRows
	}
	delete(r.s.flats, id)
	delete(r.s.addresses, f.LocationID)

	for k := range r.s.favorites {
		if k[1] == id {
			delete(r.s.favorites, k)
		}
	}
	for k := range r.s.ratings {
		if k[0] == id {
			delete(r.s.ratings, k)
		}
	}
	for bid, b := range r.s.bookings {
		if b.FlatID == id {
			delete(r.s.bookings, bid)
		}
	}
	for _, n := range r.s.notifications {
		if n.FlatID != nil && *n.FlatID == id {
			n.FlatID = nil
		}
	}
	return nil
}

type memRatingRepo struct{ s *MemStore }

func (r *memRatingRepo) Upsert(_ context.Context, rt *models.Rating) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := pairKey{rt.FlatID, rt.UserID}
	if existing, ok := r.s.ratings[key]; ok {
		rt.ID = existing.ID
	}
	rt.CreatedAt = r.s.now()
	c := *rt
	r.s.ratings[key] = &c
	return nil
}

func (r *memRatingRepo) ListByFlat(_ context.Context, flatID uuid.UUID) ([]*models.Rating, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Rating{}
	for k, rt := range r.s.ratings {
		if k[0] == flatID {
			c := *rt
			out = append(out, &c)
		}
	}
	sortBy(out, func(rt *models.Rating) int64 { return rt.CreatedAt.UnixNano() }, true)
	return out, nil
}

func (r *memRatingRepo) Average(_ context.Context, flatID uuid.UUID) (float64, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum, n int64
	for k, rt := range r.s.ratings {
		if k[0] == flatID {
			sum += int64(rt.Rating)
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(n), n, nil
}

type memFavoriteRepo struct{ s *MemStore }

func (r *memFavoriteRepo) Add(_ context.Context, userID, flatID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := pairKey{userID, flatID}
	if _, ok := r.s.favorites[key]; ok {
		return false, nil
	}
	r.s.favorites[key] = r.s.now()
	return true, nil
}

func (r *memFavoriteRepo) Remove(_ context.Context, userID, flatID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := pairKey{userID, flatID}
	if _, ok := r.s.favorites[key]; !ok {
		return false, nil
	}
	delete(r.s.favorites, key)
	return true, nil
}

func (r *memFavoriteRepo) ListFlats(_ context.Context, userID uuid.UUID) ([]*models.Flat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	type entry struct {
		f  *models.Flat
		at int64
	}
	var entries []entry
	for k, at := range r.s.favorites {
		if k[0] != userID {
			continue
		}
		if f, ok := r.s.flats[k[1]]; ok {
			entries = append(entries, entry{copyFlat(f), at.UnixNano()})
		}
	}
	sortBy(entries, func(e entry) int64 { return e.at }, true)
	out := make([]*models.Flat, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.f)
	}
	return out, nil
}

func (r *memFavoriteRepo) ListUserIDsByFlat(_ context.Context, flatID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []uuid.UUID
	for k := range r.s.favorites {
		if k[1] == flatID {
			out = append(out, k[0])
		}
	}
	return out, nil
}

// FavoriteCount is the number of wishlist rows for a user.
func (s *MemStore) FavoriteCount(userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.favorites {
		if k[0] == userID {
			n++
		}
	}
	return n
}
