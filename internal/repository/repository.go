package repository

import (
	"context"
	"errors"

	"github.com/jfuenzalida/placebook-api/internal/config"
	"github.com/jfuenzalida/placebook-api/internal/model"
	"github.com/jmoiron/sqlx"
)

// ErrPlaceNotFound is returned by Update and Delete when no record matches
// the given id.
var ErrPlaceNotFound = errors.New("place not found")

// PlaceRepository defines operations for places
type PlaceRepository interface {
	// ListAll returns all places ordered by display_order ascending;
	// ties keep insertion order.
	ListAll(ctx context.Context) ([]model.Place, error)
	// GetByID returns nil, nil when no place matches.
	GetByID(ctx context.Context, id int) (*model.Place, error)
	// Insert stores a new place and assigns its generated id into place.ID.
	Insert(ctx context.Context, place *model.Place) error
	// Update replaces the full record matching place.ID.
	Update(ctx context.Context, place *model.Place) error
	// Delete removes the record matching id.
	Delete(ctx context.Context, id int) error
}

// Container holds all repositories
type Container struct {
	Place PlaceRepository
}

// NewRepositories creates repository implementations based on DB type
func NewRepositories(db *sqlx.DB, dbType config.DBType) *Container {
	if dbType == config.DBTypePostgreSQL {
		return &Container{
			Place: &pgPlaceRepository{db: db},
		}
	}

	// Default to SQLite
	return &Container{
		Place: &sqlitePlaceRepository{db: db},
	}
}

// IsDatabaseEmpty reports whether the places table has no rows (used by main)
func IsDatabaseEmpty(ctx context.Context, db *sqlx.DB) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM places"
	err := db.GetContext(ctx, &count, query)
	if err != nil {
		// Simplify error handling for non-existent tables
		return true, nil
	}
	return count == 0, nil
}
