package geo

import (
	"math"
	"testing"
)

func TestCalculateHaversineDistance(t *testing.T) {
	testCases := []struct {
		name       string
		from, to   Coordinate
		expectedKm float64
		tolerance  float64
	}{
		{
			name:       "same point",
			from:       NewCoordinate(41.88, -87.63),
			to:         NewCoordinate(41.88, -87.63),
			expectedKm: 0,
			tolerance:  1e-9,
		},
		{
			name:       "one longitude degree at the equator",
			from:       NewCoordinate(0, 0),
			to:         NewCoordinate(0, 1),
			expectedKm: 111.19,
			tolerance:  0.2,
		},
		{
			name:       "jakarta to surabaya",
			from:       NewCoordinate(-6.2088, 106.8456),
			to:         NewCoordinate(-7.2575, 112.7521),
			expectedKm: 663,
			tolerance:  10,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateHaversineDistance(tt.from.GetLat(), tt.from.GetLon(),
				tt.to.GetLat(), tt.to.GetLon())
			if math.Abs(got-tt.expectedKm) > tt.tolerance {
				t.Errorf("expected %f km, got %f km", tt.expectedKm, got)
			}

			meters := CalculateHaversineDistanceInMeter(tt.from.GetLat(), tt.from.GetLon(),
				tt.to.GetLat(), tt.to.GetLon())
			if math.Abs(meters-got*1000) > 1e-6 {
				t.Errorf("meter variant disagrees: %f vs %f", meters, got*1000)
			}
		})
	}
}

func TestGetDestinationPointRoundTrip(t *testing.T) {
	lat, lon := 41.88, -87.63
	destLat, destLon := GetDestinationPoint(lat, lon, 45, 1.0)

	dist := CalculateHaversineDistance(lat, lon, destLat, destLon)
	if math.Abs(dist-1.0) > 0.01 {
		t.Errorf("destination point should be 1 km away, got %f km", dist)
	}
}

func TestPolylineFromCoords(t *testing.T) {
	coords := []Coordinate{
		NewCoordinate(38.5, -120.2),
		NewCoordinate(40.7, -120.95),
		NewCoordinate(43.252, -126.453),
	}
	// reference encoding from the polyline algorithm document
	expected := "_p~iF~ps|U_ulLnnqC_mqNvxq`@"
	if got := PolylineFromCoords(coords); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}
