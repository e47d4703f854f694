package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

// FlatFilter narrows List. Nil / empty fields are ignored.
type FlatFilter struct {
	City     string
	Type     *models.FlatType
	MinPrice *int64
	MaxPrice *int64
	BHKs     *int
	OwnerID  *uuid.UUID
	Limit    int
	Offset   int
}

type FlatRepository interface {
	// CreateWithAddress inserts f.Location and f in one transaction.
	CreateWithAddress(ctx context.Context, f *models.Flat) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Flat, error)
	List(ctx context.Context, filter FlatFilter) ([]*models.Flat, error)
	Count(ctx context.Context) (int64, error)

	UpdateIfVersion(ctx context.Context, f *models.Flat, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Flat) error) error
	AppendImage(ctx context.Context, id uuid.UUID, url string) error

	// Delete removes the flat; favorites, bookings and ratings cascade,
	// notifications keep a NULL flat reference.
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type flatRepo struct {
	*BaseVersionedRepo[*models.Flat]
	db DB
}

func NewFlatRepository(db DB) FlatRepository {
	r := &flatRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectFlat()+" WHERE f.id=$1", scanFlat)
	return r
}

func (r *flatRepo) CreateWithAddress(ctx context.Context, f *models.Flat) error {
	if f.Location == nil {
		return errors.New("flat location is required")
	}
	f.LocationID = f.Location.ID

	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := insertAddress(ctx, tx, f.Location); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
            INSERT INTO flats (
                id, title, description, price, type, location_id, owner_id,
                main_image, images, amenities, bhks, area,
                created_at, updated_at, row_version
            ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12, NOW(), NOW(), 1)
        `,
			f.ID, f.Title, f.Description, f.Price, string(f.Type), f.LocationID, f.OwnerID,
			f.MainImage, nonNilStrings(f.Images), amenityStrings(f.Amenities), f.BHKs, f.Area,
		)
		return err
	})
}

func (r *flatRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Flat, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *flatRepo) List(ctx context.Context, filter FlatFilter) ([]*models.Flat, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.City != "" {
		add("lower(a.city)=lower($%d)", filter.City)
	}
	if filter.Type != nil {
		add("f.type=$%d", string(*filter.Type))
	}
	if filter.MinPrice != nil {
		add("f.price>=$%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		add("f.price<=$%d", *filter.MaxPrice)
	}
	if filter.BHKs != nil {
		add("f.bhks=$%d", *filter.BHKs)
	}
	if filter.OwnerID != nil {
		add("f.owner_id=$%d", *filter.OwnerID)
	}

	sql := baseSelectFlat()
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += " ORDER BY f.created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		sql += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	return queryFlats(ctx, r.db, sql, args...)
}

func (r *flatRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM flats`).Scan(&n)
	return n, err
}

func (r *flatRepo) UpdateIfVersion(ctx context.Context, f *models.Flat, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE flats SET
            title=$1, description=$2, price=$3, type=$4, main_image=$5,
            images=$6, amenities=$7, bhks=$8, area=$9,
            updated_at=NOW(), row_version=row_version+1
        WHERE id=$10 AND row_version=$11
    `,
		f.Title, f.Description, f.Price, string(f.Type), f.MainImage,
		nonNilStrings(f.Images), amenityStrings(f.Amenities), f.BHKs, f.Area,
		f.ID, expected,
	)
}

func (r *flatRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Flat) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *flatRepo) AppendImage(ctx context.Context, id uuid.UUID, url string) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE flats SET
            images = array_append(images, $1),
            main_image = CASE WHEN main_image = '' THEN $1 ELSE main_image END,
            updated_at=NOW(), row_version=row_version+1
        WHERE id=$2
    `, url, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *flatRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		var locationID uuid.UUID
		err := tx.QueryRow(ctx, `DELETE FROM flats WHERE id=$1 RETURNING location_id`, id).Scan(&locationID)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `DELETE FROM addresses WHERE id=$1`, locationID)
		return err
	})
}

/* ------------------------------------------------------------------
   Helpers
------------------------------------------------------------------ */

func baseSelectFlat() string {
	return `
        SELECT
            f.id, f.title, f.description, f.price, f.type, f.location_id, f.owner_id,
            f.main_image, f.images, f.amenities, f.bhks, f.area,
            f.created_at, f.updated_at, f.row_version,
            a.id, a.address, a.city, a.state, a.country, a.postal_code,
            a.latitude, a.longitude, a.landmark, a.time_zone
        FROM flats f
        JOIN addresses a ON a.id = f.location_id
    `
}

func scanFlat(row pgx.Row) (*models.Flat, error) {
	var (
		f         models.Flat
		a         models.Address
		typ       string
		amenities []string
		landmark  pgtype.Text
	)
	err := row.Scan(
		&f.ID,
		&f.Title,
		&f.Description,
		&f.Price,
		&typ,
		&f.LocationID,
		&f.OwnerID,
		&f.MainImage,
		&f.Images,
		&amenities,
		&f.BHKs,
		&f.Area,
		&f.CreatedAt,
		&f.UpdatedAt,
		&f.RowVersion,
		&a.ID,
		&a.Address,
		&a.City,
		&a.State,
		&a.Country,
		&a.PostalCode,
		&a.Latitude,
		&a.Longitude,
		&landmark,
		&a.TimeZone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	f.Type = models.FlatType(typ)
	f.Amenities = make([]models.Amenity, 0, len(amenities))
	for _, s := range amenities {
		f.Amenities = append(f.Amenities, models.Amenity(s))
	}
	if f.Images == nil {
		f.Images = []string{}
	}
	a.Landmark = textPtr(landmark)
	f.Location = &a
	return &f, nil
}

func queryFlats(ctx context.Context, db DB, sql string, args ...any) ([]*models.Flat, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Flat{}
	for rows.Next() {
		f, err := scanFlat(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func amenityStrings(in []models.Amenity) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		out = append(out, string(a))
	}
	return out
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
