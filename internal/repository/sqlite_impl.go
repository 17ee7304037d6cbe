package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jfuenzalida/placebook-api/internal/model"
	"github.com/jmoiron/sqlx"
)

type sqlitePlaceRepository struct {
	db *sqlx.DB
}

func (r *sqlitePlaceRepository) ListAll(ctx context.Context) ([]model.Place, error) {
	// Secondary sort on id keeps insertion order for equal display_order
	q := `SELECT * FROM places ORDER BY display_order ASC, id ASC`
	places := []model.Place{}
	if err := r.db.SelectContext(ctx, &places, q); err != nil {
		return nil, err
	}
	return places, nil
}

func (r *sqlitePlaceRepository) GetByID(ctx context.Context, id int) (*model.Place, error) {
	var place model.Place
	if err := r.db.GetContext(ctx, &place, "SELECT * FROM places WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &place, nil
}

func (r *sqlitePlaceRepository) Insert(ctx context.Context, place *model.Place) error {
	q := `
		INSERT INTO places (name, image_url, lat, lon, display_order, accommodation_cost, transportation_cost, comments)
		VALUES (:name, :image_url, :lat, :lon, :display_order, :accommodation_cost, :transportation_cost, :comments)
	`
	res, err := r.db.NamedExecContext(ctx, q, place)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	place.ID = int(id)
	return nil
}

func (r *sqlitePlaceRepository) Update(ctx context.Context, place *model.Place) error {
	q := `
		UPDATE places
		SET name = :name,
		    image_url = :image_url,
		    lat = :lat,
		    lon = :lon,
		    display_order = :display_order,
		    accommodation_cost = :accommodation_cost,
		    transportation_cost = :transportation_cost,
		    comments = :comments
		WHERE id = :id
	`
	res, err := r.db.NamedExecContext(ctx, q, place)
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

func (r *sqlitePlaceRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM places WHERE id = ?", id)
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
