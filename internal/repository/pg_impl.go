package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jfuenzalida/placebook-api/internal/model"
	"github.com/jmoiron/sqlx"
)

// --- PostgreSQL Implementation ---

type pgPlaceRepository struct {
	db *sqlx.DB
}

func (r *pgPlaceRepository) ListAll(ctx context.Context) ([]model.Place, error) {
	q := `SELECT * FROM places ORDER BY display_order ASC, id ASC`
	places := []model.Place{}
	if err := r.db.SelectContext(ctx, &places, q); err != nil {
		return nil, err
	}
	return places, nil
}

func (r *pgPlaceRepository) GetByID(ctx context.Context, id int) (*model.Place, error) {
	var place model.Place
	if err := r.db.GetContext(ctx, &place, "SELECT * FROM places WHERE id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &place, nil
}

func (r *pgPlaceRepository) Insert(ctx context.Context, place *model.Place) error {
	q := `
		INSERT INTO places (name, image_url, lat, lon, display_order, accommodation_cost, transportation_cost, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.db.GetContext(ctx, &place.ID, q,
		place.Name, place.ImageURL, place.Lat, place.Lon,
		place.DisplayOrder, place.AccommodationCost, place.TransportationCost, place.Comments,
	)
}

func (r *pgPlaceRepository) Update(ctx context.Context, place *model.Place) error {
	q := `
		UPDATE places
		SET name = $2,
		    image_url = $3,
		    lat = $4,
		    lon = $5,
		    display_order = $6,
		    accommodation_cost = $7,
		    transportation_cost = $8,
		    comments = $9
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q,
		place.ID, place.Name, place.ImageURL, place.Lat, place.Lon,
		place.DisplayOrder, place.AccommodationCost, place.TransportationCost, place.Comments,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPlaceNotFound
	}
	return nil
}

func (r *pgPlaceRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM places WHERE id = $1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPlaceNotFound
	}
	return nil
}
