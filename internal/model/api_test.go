package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectedLat float64
		expectedLon float64
		expectError bool
	}{
		{
			name:        "simple pair",
			input:       "-33.05, -71.6",
			expectedLat: -33.05,
			expectedLon: -71.6,
		},
		{
			name:        "no space after comma",
			input:       "52.52,13.405",
			expectedLat: 52.52,
			expectedLon: 13.405,
		},
		{
			name:        "extra whitespace",
			input:       "  -33.05 ,  -71.6  ",
			expectedLat: -33.05,
			expectedLon: -71.6,
		},
		{
			name:        "missing comma",
			input:       "-33.05 -71.6",
			expectError: true,
		},
		{
			name:        "too many parts",
			input:       "1, 2, 3",
			expectError: true,
		},
		{
			name:        "non-numeric latitude",
			input:       "north, -71.6",
			expectError: true,
		},
		{
			name:        "non-numeric longitude",
			input:       "-33.05, west",
			expectError: true,
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon, err := ParseCoordinates(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedLat, lat)
			assert.Equal(t, tt.expectedLon, lon)
		})
	}
}

func TestPlaceRequest_ResolveCoordinates(t *testing.T) {
	lat, lon := -33.05, -71.6

	t.Run("separate fields", func(t *testing.T) {
		req := PlaceRequest{Lat: &lat, Lon: &lon}
		gotLat, gotLon, err := req.ResolveCoordinates()
		require.NoError(t, err)
		assert.Equal(t, -33.05, gotLat)
		assert.Equal(t, -71.6, gotLon)
	})

	t.Run("combined field wins", func(t *testing.T) {
		req := PlaceRequest{Lat: &lat, Lon: &lon, Coordinates: "10.5, 20.25"}
		gotLat, gotLon, err := req.ResolveCoordinates()
		require.NoError(t, err)
		assert.Equal(t, 10.5, gotLat)
		assert.Equal(t, 20.25, gotLon)
	})

	t.Run("missing lon", func(t *testing.T) {
		req := PlaceRequest{Lat: &lat}
		_, _, err := req.ResolveCoordinates()
		assert.Error(t, err)
	})
}
