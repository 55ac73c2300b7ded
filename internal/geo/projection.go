// ABOUTME: Geodesic distance, bearing, field-of-view and AR screen projection
// ABOUTME: Pure functions safe to call from any goroutine on every sensor tick

package geo

import (
	"math"

	"github.com/golang/geo/s2"
)

const (
	// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
	EarthRadiusMeters = 6371e3

	// DefaultFieldOfView is the angular window, in degrees, treated as "in view".
	DefaultFieldOfView = 50.0

	// MarkerOffsetY is the fixed vertical placement of every AR marker.
	// Only the horizontal offset and the scale follow the target.
	MarkerOffsetY = -0.2

	// degreesPerScreenHalf maps this many degrees off-axis to the edge of the screen (x = ±1).
	degreesPerScreenHalf = 60.0

	// scaleReference is the distance in meters at which a marker is drawn at scale 1.
	scaleReference = 150.0
	// scaleFloorMeters keeps very close targets from blowing up the scale.
	scaleFloorMeters = 10.0
	minScale         = 0.5
	maxScale         = 1.5
)

// Projection is the normalized screen placement of an AR marker.
// X is 0 straight ahead and ±1 at ±60° off-axis; callers clamp it for rendering.
type Projection struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale"`
}

// DistanceMeters returns the great-circle distance between a and b using the haversine formula.
func DistanceMeters(a, b GeoPoint) float64 {
	angle := s2.LatLngFromDegrees(a.Lat, a.Lng).Distance(s2.LatLngFromDegrees(b.Lat, b.Lng))
	return angle.Radians() * EarthRadiusMeters
}

// BearingDegrees returns the initial compass bearing from origin to target in [0, 360).
// Coincident points yield 0.
func BearingDegrees(origin, target GeoPoint) float64 {
	lat1 := toRadians(origin.Lat)
	lat2 := toRadians(target.Lat)
	dLng := toRadians(target.Lng - origin.Lng)

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)
	if x == 0 && y == 0 {
		return 0
	}

	return NormalizeDegrees(toDegrees(math.Atan2(y, x)))
}

// IsInView reports whether bearing lies inside a field of view centred on heading.
func IsInView(heading, bearing, fieldOfView float64) bool {
	diff := math.Abs(NormalizeDegrees(heading - bearing))
	half := fieldOfView / 2
	return diff < half || diff > 360-half
}

// InView is IsInView with DefaultFieldOfView.
func InView(heading, bearing float64) bool {
	return IsInView(heading, bearing, DefaultFieldOfView)
}

// ProjectToScreen places a target on screen from its bearing and distance and the current heading.
func ProjectToScreen(bearing, heading, distance float64) Projection {
	rel := RelativeBearing(bearing, heading)

	return Projection{
		X:     rel / degreesPerScreenHalf,
		Y:     MarkerOffsetY,
		Scale: scaleForDistance(distance),
	}
}

// RelativeBearing returns the signed offset of bearing from heading in (-180, 180].
// Negative values are to the left.
func RelativeBearing(bearing, heading float64) float64 {
	rel := NormalizeDegrees(bearing - heading)
	if rel > 180 {
		rel -= 360
	}
	return rel
}

// NormalizeDegrees wraps any angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	// -1e-15 + 360 rounds to 360
	if d >= 360 {
		d = 0
	}
	return d
}

func scaleForDistance(distance float64) float64 {
	// !(>=) also catches NaN
	if !(distance >= scaleFloorMeters) {
		distance = scaleFloorMeters
	}
	return clamp(scaleReference/distance, minScale, maxScale)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
