package service

import (
	"context"
	"fmt"

	"github.com/jfuenzalida/placebook-api/internal/model"
	"go.uber.org/zap"
)

// ListPlaces returns the published snapshot, loading it first if no load has
// completed yet.
func (s *Service) ListPlaces(ctx context.Context) ([]model.Place, error) {
	if places, loaded := s.Snapshot(); loaded {
		return places, nil
	}
	if err := s.Reload(ctx); err != nil {
		return nil, fmt.Errorf("failed to load places: %w", err)
	}
	places, _ := s.Snapshot()
	return places, nil
}

// GetPlaceByID looks the place up in the published snapshot, falling back to
// the store before the first load completes. Returns nil, nil when absent.
func (s *Service) GetPlaceByID(ctx context.Context, id int) (*model.Place, error) {
	places, loaded := s.Snapshot()
	if !loaded {
		return s.placeRepo.GetByID(ctx, id)
	}
	for i := range places {
		if places[i].ID == id {
			p := places[i]
			return &p, nil
		}
	}
	return nil, nil
}

// AddPlace stores a new place and refreshes the snapshot before returning,
// so the created record is immediately visible to readers.
func (s *Service) AddPlace(ctx context.Context, place model.Place) (*model.Place, error) {
	place.ID = 0
	if err := s.placeRepo.Insert(ctx, &place); err != nil {
		return nil, fmt.Errorf("failed to insert place: %w", err)
	}
	s.reloadAfterMutation(ctx, "add", place.ID)
	return &place, nil
}

// UpdatePlace replaces the full record matching place.ID and refreshes the
// snapshot. Returns repository.ErrPlaceNotFound for unknown ids.
func (s *Service) UpdatePlace(ctx context.Context, place model.Place) (*model.Place, error) {
	if err := s.placeRepo.Update(ctx, &place); err != nil {
		return nil, err
	}
	s.reloadAfterMutation(ctx, "update", place.ID)
	return &place, nil
}

// DeletePlace removes the record matching id and refreshes the snapshot.
// Returns repository.ErrPlaceNotFound for unknown ids.
func (s *Service) DeletePlace(ctx context.Context, id int) error {
	if err := s.placeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.reloadAfterMutation(ctx, "delete", id)
	return nil
}

// reloadAfterMutation refreshes the snapshot after a successful store write.
// The write is already durable at this point, so a failed refresh is logged
// and left for the next read to repair rather than reported as a failure.
func (s *Service) reloadAfterMutation(ctx context.Context, op string, id int) {
	if err := s.Reload(ctx); err != nil {
		s.logger.Warn("Snapshot reload failed after mutation",
			zap.String("op", op),
			zap.Int("place_id", id),
			zap.Error(err),
		)
	}
}
