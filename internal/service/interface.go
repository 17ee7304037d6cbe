package service

import (
	"context"
	"io"

	"github.com/jfuenzalida/placebook-api/internal/exchange"
	"github.com/jfuenzalida/placebook-api/internal/model"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	ListPlaces(ctx context.Context) ([]model.Place, error)
	GetPlaceByID(ctx context.Context, id int) (*model.Place, error)
	AddPlace(ctx context.Context, place model.Place) (*model.Place, error)
	UpdatePlace(ctx context.Context, place model.Place) (*model.Place, error)
	DeletePlace(ctx context.Context, id int) error
	AttachImage(ctx context.Context, id int, ext string, r io.Reader) (*model.Place, error)
	LatestRate(ctx context.Context) (exchange.Rate, error)
	ConvertToUSD(ctx context.Context, clp int) (float64, error)
	PlaceBudget(ctx context.Context, id int) (*model.BudgetResponse, error)
}
