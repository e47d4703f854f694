package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
)

// FavoriteRepository is the (user, flat) wishlist junction. Add and Remove
// are single statements keyed on the primary key, so concurrent toggles
// cannot lose updates or duplicate rows.
type FavoriteRepository interface {
	// Add reports false when the pair was already present.
	Add(ctx context.Context, userID, flatID uuid.UUID) (bool, error)
	// Remove reports false when the pair was absent.
	Remove(ctx context.Context, userID, flatID uuid.UUID) (bool, error)
	ListFlats(ctx context.Context, userID uuid.UUID) ([]*models.Flat, error)
	ListUserIDsByFlat(ctx context.Context, flatID uuid.UUID) ([]uuid.UUID, error)
}

type favoriteRepo struct {
	db DB
}

func NewFavoriteRepository(db DB) FavoriteRepository {
	return &favoriteRepo{db: db}
}

func (r *favoriteRepo) Add(ctx context.Context, userID, flatID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `
        INSERT INTO favorites (user_id, flat_id, created_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (user_id, flat_id) DO NOTHING
    `, userID, flatID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *favoriteRepo) Remove(ctx context.Context, userID, flatID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM favorites WHERE user_id=$1 AND flat_id=$2`, userID, flatID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *favoriteRepo) ListFlats(ctx context.Context, userID uuid.UUID) ([]*models.Flat, error) {
	return queryFlats(ctx, r.db,
		baseSelectFlat()+`
        JOIN favorites fav ON fav.flat_id = f.id
        WHERE fav.user_id=$1
        ORDER BY fav.created_at DESC`, userID)
}

func (r *favoriteRepo) ListUserIDsByFlat(ctx context.Context, flatID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id FROM favorites WHERE flat_id=$1`, flatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
