package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jfuenzalida/placebook-api/internal/model"
	"go.uber.org/zap"
)

// AttachImage stores an uploaded image for the place and points its image_url
// at the stored file. The filename is randomized; ext must include the dot.
// Returns nil, nil when the place does not exist.
func (s *Service) AttachImage(ctx context.Context, id int, ext string, r io.Reader) (*model.Place, error) {
	place, err := s.GetPlaceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, nil
	}

	if err := os.MkdirAll(s.mediaDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.mediaDir, name)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create image file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to close image file: %w", err)
	}

	old := place.ImageURL
	place.ImageURL = "/media/" + name
	if _, err := s.UpdatePlace(ctx, *place); err != nil {
		os.Remove(path)
		return nil, err
	}

	s.logger.Info("Attached place image",
		zap.Int("place_id", id),
		zap.String("image_url", place.ImageURL),
		zap.String("previous", old),
	)
	return place, nil
}
