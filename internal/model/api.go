package model

import (
	"fmt"
	"strconv"
	"strings"
)

// PlaceRequest represents the body of a place create/replace call.
// Coordinates may be given either as separate lat/lon fields or as a single
// "lat, lon" string (the combined field wins when both are present).
type PlaceRequest struct {
	Name               string   `json:"name"`
	ImageURL           string   `json:"image_url"`
	Lat                *float64 `json:"lat"`
	Lon                *float64 `json:"lon"`
	Coordinates        string   `json:"coordinates,omitempty"`
	DisplayOrder       int      `json:"display_order"`
	AccommodationCost  int      `json:"accommodation_cost"`
	TransportationCost int      `json:"transportation_cost"`
	Comments           string   `json:"comments"`
}

// PlaceListResponse represents the response for the place list
type PlaceListResponse struct {
	Places []Place `json:"places"`
	Count  int     `json:"count"`
}

// RateResponse represents the latest dollar rate
type RateResponse struct {
	Rate float64 `json:"rate"`
	Date *string `json:"date"`
}

// BudgetResponse represents a place's costs converted to USD at a single rate
type BudgetResponse struct {
	PlaceID               int     `json:"place_id"`
	Rate                  float64 `json:"rate"`
	RateDate              *string `json:"rate_date"`
	AccommodationCostCLP  int     `json:"accommodation_cost_clp"`
	TransportationCostCLP int     `json:"transportation_cost_clp"`
	AccommodationCostUSD  float64 `json:"accommodation_cost_usd"`
	TransportationCostUSD float64 `json:"transportation_cost_usd"`
	TotalCLP              int     `json:"total_clp"`
	TotalUSD              float64 `json:"total_usd"`
}

// ParseCoordinates parses a combined "lat, lon" pair as entered in the
// add/edit form.
func ParseCoordinates(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("coordinates must be \"lat, lon\", got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q", strings.TrimSpace(parts[0]))
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q", strings.TrimSpace(parts[1]))
	}
	return lat, lon, nil
}

// ResolveCoordinates returns the requested coordinates, preferring the
// combined field.
func (r PlaceRequest) ResolveCoordinates() (float64, float64, error) {
	if r.Coordinates != "" {
		return ParseCoordinates(r.Coordinates)
	}
	if r.Lat == nil || r.Lon == nil {
		return 0, 0, fmt.Errorf("lat and lon are required")
	}
	return *r.Lat, *r.Lon, nil
}
