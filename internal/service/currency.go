package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jfuenzalida/placebook-api/internal/exchange"
	"github.com/jfuenzalida/placebook-api/internal/model"
)

// ErrRateUnavailable wraps every failure to obtain a usable dollar rate, so
// callers can map rate degradation to an explicit upstream failure.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// LatestRate fetches the most recent dollar observation (CLP per 1 USD).
func (s *Service) LatestRate(ctx context.Context) (exchange.Rate, error) {
	return s.rates.LatestDollarRate(ctx)
}

// ConvertToUSD converts an amount in CLP to USD at the latest fetched rate.
// Zero converts to zero without touching the network. Rate-fetch failures are
// returned to the caller instead of being masked as a numeric result.
func (s *Service) ConvertToUSD(ctx context.Context, clp int) (float64, error) {
	if clp == 0 {
		return 0, nil
	}

	rate, err := s.rates.LatestDollarRate(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}
	if rate.Value <= 0 {
		return 0, fmt.Errorf("%w: rate is not positive: %v", ErrRateUnavailable, rate.Value)
	}
	return float64(clp) / rate.Value, nil
}

// PlaceBudget converts both costs of a place at a single rate fetch, so the
// two figures can never reflect different observations. Returns nil, nil when
// the place does not exist.
func (s *Service) PlaceBudget(ctx context.Context, id int) (*model.BudgetResponse, error) {
	place, err := s.GetPlaceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, nil
	}

	rate, err := s.rates.LatestDollarRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}
	if rate.Value <= 0 {
		return nil, fmt.Errorf("%w: rate is not positive: %v", ErrRateUnavailable, rate.Value)
	}

	totalCLP := place.AccommodationCost + place.TransportationCost
	return &model.BudgetResponse{
		PlaceID:               place.ID,
		Rate:                  rate.Value,
		RateDate:              rate.Date,
		AccommodationCostCLP:  place.AccommodationCost,
		TransportationCostCLP: place.TransportationCost,
		AccommodationCostUSD:  float64(place.AccommodationCost) / rate.Value,
		TransportationCostUSD: float64(place.TransportationCost) / rate.Value,
		TotalCLP:              totalCLP,
		TotalUSD:              float64(totalCLP) / rate.Value,
	}, nil
}
