package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
)

type RatingRepository interface {
	// Upsert stores one rating per (flat, user); a repeat replaces the earlier one.
	Upsert(ctx context.Context, rt *models.Rating) error
	ListByFlat(ctx context.Context, flatID uuid.UUID) ([]*models.Rating, error)
	Average(ctx context.Context, flatID uuid.UUID) (avg float64, count int64, err error)
}

type ratingRepo struct {
	db DB
}

func NewRatingRepository(db DB) RatingRepository {
	return &ratingRepo{db: db}
}

func (r *ratingRepo) Upsert(ctx context.Context, rt *models.Rating) error {
	return r.db.QueryRow(ctx, `
        INSERT INTO flat_ratings (id, flat_id, user_id, rating, comment, created_at)
        VALUES ($1,$2,$3,$4,$5, NOW())
        ON CONFLICT (flat_id, user_id) DO UPDATE SET
            rating = EXCLUDED.rating,
            comment = EXCLUDED.comment,
            created_at = NOW()
        RETURNING id, created_at
    `, rt.ID, rt.FlatID, rt.UserID, rt.Rating, rt.Comment).Scan(&rt.ID, &rt.CreatedAt)
}

func (r *ratingRepo) ListByFlat(ctx context.Context, flatID uuid.UUID) ([]*models.Rating, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, flat_id, user_id, rating, comment, created_at
        FROM flat_ratings WHERE flat_id=$1 ORDER BY created_at DESC
    `, flatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Rating{}
	for rows.Next() {
		var rt models.Rating
		if err := rows.Scan(&rt.ID, &rt.FlatID, &rt.UserID, &rt.Rating, &rt.Comment, &rt.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &rt)
	}
	return out, rows.Err()
}

func (r *ratingRepo) Average(ctx context.Context, flatID uuid.UUID) (float64, int64, error) {
	var (
		avg   float64
		count int64
	)
	err := r.db.QueryRow(ctx, `
        SELECT COALESCE(AVG(rating), 0)::float8, COUNT(*) FROM flat_ratings WHERE flat_id=$1
    `, flatID).Scan(&avg, &count)
	return avg, count, err
}
