// ABOUTME: Unit tests for supporting geodesy helpers
// ABOUTME: Tests destination point, orientation heading, formatting and links

package geo

import (
	"math"
	"strings"
	"testing"
)

func TestDestinationPoint_RoundTrip(t *testing.T) {
	origin := GeoPoint{Lat: 41.8781, Lng: -87.6298}
	for _, bearing := range []float64{0, 45, 90, 135, 180, 225, 270, 315} {
		dest := DestinationPoint(origin, bearing, 500)

		if d := DistanceMeters(origin, dest); math.Abs(d-500) > 0.01 {
			t.Errorf("bearing %f: expected 500m, got %f", bearing, d)
		}
		got := BearingDegrees(origin, dest)
		diff := math.Abs(RelativeBearing(got, bearing))
		if diff > 1e-6 {
			t.Errorf("bearing %f: walked along %f", bearing, got)
		}
	}
}

func TestDestinationPoint_ZeroDistance(t *testing.T) {
	origin := GeoPoint{Lat: 10, Lng: 20}
	dest := DestinationPoint(origin, 123, 0)
	if math.Abs(dest.Lat-origin.Lat) > 1e-9 || math.Abs(dest.Lng-origin.Lng) > 1e-9 {
		t.Errorf("expected %v, got %v", origin, dest)
	}
}

func TestDestinationPoint_WrapsAntimeridian(t *testing.T) {
	dest := DestinationPoint(GeoPoint{Lat: 0, Lng: 179.999}, 90, 1000)
	if dest.Lng > 180 || dest.Lng < -180 {
		t.Errorf("longitude %f out of range", dest.Lng)
	}
	if dest.Lng > 0 {
		t.Errorf("expected to cross to the western hemisphere, got %f", dest.Lng)
	}
}

func TestHeadingFromOrientation(t *testing.T) {
	if HeadingFromOrientation(nil) != nil {
		t.Error("expected nil heading for nil alpha")
	}

	alpha := 123.5
	h := HeadingFromOrientation(&alpha)
	if h == nil || *h != 123.5 {
		t.Errorf("expected 123.5, got %v", h)
	}

	wrapped := 370.0
	h = HeadingFromOrientation(&wrapped)
	if h == nil || math.Abs(*h-10) > 1e-12 {
		t.Errorf("expected 10, got %v", h)
	}

	nan := math.NaN()
	if HeadingFromOrientation(&nan) != nil {
		t.Error("expected nil heading for NaN alpha")
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{0, "0m"},
		{12.4, "12m"},
		{12.5, "13m"},
		{999.4, "999m"},
		{1000, "1.0km"},
		{1234, "1.2km"},
		{15360, "15.4km"},
	}
	for _, tt := range tests {
		if got := FormatDistance(tt.meters); got != tt.want {
			t.Errorf("FormatDistance(%f) = %q, want %q", tt.meters, got, tt.want)
		}
	}
}

func TestClampX(t *testing.T) {
	if ClampX(3) != 1 || ClampX(-3) != -1 || ClampX(0.25) != 0.25 {
		t.Error("ClampX should limit to [-1, 1]")
	}
}

func TestScreenPercent(t *testing.T) {
	left, top := ScreenPercent(Projection{X: 0.5, Y: -0.2, Scale: 1})
	if left != 75 {
		t.Errorf("expected left 75, got %f", left)
	}
	if math.Abs(top-40) > 1e-12 {
		t.Errorf("expected top 40, got %f", top)
	}
}

func TestDirectionsURL(t *testing.T) {
	u := DirectionsURL(GeoPoint{Lat: 41.8781, Lng: -87.6298}, GeoPoint{Lat: 41.8827, Lng: -87.6233})
	if !strings.HasPrefix(u, "https://www.google.com/maps/dir/?api=1") {
		t.Errorf("unexpected prefix: %s", u)
	}
	for _, part := range []string{"origin=41.8781,-87.6298", "destination=41.8827,-87.6233", "travelmode=walking"} {
		if !strings.Contains(u, part) {
			t.Errorf("expected %q in %s", part, u)
		}
	}
}

func TestGeoPointString(t *testing.T) {
	if got := (GeoPoint{Lat: 1.5, Lng: -2.25}).String(); got != "1.500000,-2.250000" {
		t.Errorf("unexpected string: %s", got)
	}
}
