package geo

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	// Test cases with known distances
	tests := []struct {
		lat1      float64
		lon1      float64
		lat2      float64
		lon2      float64
		expected  float64
		name      string
		tolerance float64 // relative tolerance (e.g., 0.001 for 0.1%)
	}{
		{
			name:      "Same point",
			lat1:      37.7749,
			lon1:      -122.4194,
			lat2:      37.7749,
			lon2:      -122.4194,
			expected:  0,
			tolerance: 0.0001,
		},
		{
			name:      "Short distance - SF downtown to Market St",
			lat1:      37.7749,
			lon1:      -122.4194,
			lat2:      37.7734,
			lon2:      -122.4167,
			expected:  0.29006,
			tolerance: 0.001,
		},
		{
			name:      "Medium distance - SF to Oakland",
			lat1:      37.7749,
			lon1:      -122.4194,
			lat2:      37.8044,
			lon2:      -122.2712,
			expected:  13.42963,
			tolerance: 0.001,
		},
		{
			name:      "Long distance - SF to NYC",
			lat1:      37.7749,
			lon1:      -122.4194,
			lat2:      40.7128,
			lon2:      -74.0060,
			expected:  4129.93681,
			tolerance: 0.001,
		},
		{
			name:      "Antipodal points",
			lat1:      37.7749,
			lon1:      -122.4194,
			lat2:      -37.7749,
			lon2:      57.5806,
			expected:  20015.0868, // approx Earth circumference / 2
			tolerance: 0.001,
		},
		{
			name:      "Across the antimeridian",
			lat1:      0,
			lon1:      179.9,
			lat2:      0,
			lon2:      -179.9,
			expected:  22.239, // 0.2 degrees of arc at the equator
			tolerance: 0.001,
		},
		{
			name:      "Near the north pole",
			lat1:      89.9,
			lon1:      0,
			lat2:      89.9,
			lon2:      180,
			expected:  22.239, // over the pole, same as 0.2 degrees of arc
			tolerance: 0.001,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := HaversineKm(tc.lat1, tc.lon1, tc.lat2, tc.lon2)

			// Use relative tolerance for non-zero distances
			var difference float64
			if tc.expected == 0 {
				difference = math.Abs(result)
			} else {
				difference = math.Abs(result-tc.expected) / tc.expected
			}

			if difference > tc.tolerance {
				t.Errorf("HaversineKm(%f, %f, %f, %f) = %f, expected %f ± %.1f%%",
					tc.lat1, tc.lon1, tc.lat2, tc.lon2, result, tc.expected, tc.tolerance*100)
			}
		})
	}
}

func TestHaversineKmSymmetry(t *testing.T) {
	ab := HaversineKm(47.6062, -122.3321, 47.7, -122.3)
	ba := HaversineKm(47.7, -122.3, 47.6062, -122.3321)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", ab, ba)
	}
}

func TestValidCoordinate(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lon  float64
		want bool
	}{
		{"valid", 47.6062, -122.3321, true},
		{"latitude boundary", 90, 180, true},
		{"negative boundary", -90, -180, true},
		{"latitude too large", 90.0001, 0, false},
		{"latitude too small", -91, 0, false},
		{"longitude too large", 0, 180.5, false},
		{"longitude too small", 0, -181, false},
		{"NaN latitude", math.NaN(), 0, false},
		{"NaN longitude", 0, math.NaN(), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidCoordinate(tc.lat, tc.lon); got != tc.want {
				t.Errorf("ValidCoordinate(%f, %f) = %v, want %v", tc.lat, tc.lon, got, tc.want)
			}
		})
	}
}
