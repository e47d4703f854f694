package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
)

type AddressRepository interface {
	Create(ctx context.Context, a *models.Address) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Address, error)
	Update(ctx context.Context, a *models.Address) error
}

type addressRepo struct {
	db DB
}

func NewAddressRepository(db DB) AddressRepository {
	return &addressRepo{db: db}
}

func (r *addressRepo) Create(ctx context.Context, a *models.Address) error {
	return insertAddress(ctx, r.db, a)
}

func (r *addressRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Address, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, address, city, state, country, postal_code,
               latitude, longitude, landmark, time_zone
        FROM addresses WHERE id=$1
    `, id)

	var (
		a        models.Address
		landmark pgtype.Text
	)
	err := row.Scan(
		&a.ID, &a.Address, &a.City, &a.State, &a.Country, &a.PostalCode,
		&a.Latitude, &a.Longitude, &landmark, &a.TimeZone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	a.Landmark = textPtr(landmark)
	return &a, nil
}

func (r *addressRepo) Update(ctx context.Context, a *models.Address) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE addresses SET
            address=$1, city=$2, state=$3, country=$4, postal_code=$5,
            latitude=$6, longitude=$7, landmark=$8, time_zone=$9
        WHERE id=$10
    `,
		a.Address, a.City, a.State, a.Country, a.PostalCode,
		a.Latitude, a.Longitude, a.Landmark, a.TimeZone,
		a.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// insertAddress is shared with the flat repository so a flat and its
// address land in the same transaction.
func insertAddress(ctx context.Context, db DB, a *models.Address) error {
	_, err := db.Exec(ctx, `
        INSERT INTO addresses (
            id, address, city, state, country, postal_code,
            latitude, longitude, landmark, time_zone
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    `,
		a.ID, a.Address, a.City, a.State, a.Country, a.PostalCode,
		a.Latitude, a.Longitude, a.Landmark, a.TimeZone,
	)
	return err
}
