// ABOUTME: Geographic point type and supporting geodesy helpers
// ABOUTME: Forward geodesic, orientation-to-heading, distance text and directions links

package geo

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const directionsBase = "https://www.google.com/maps/dir/"

// GeoPoint is a WGS 84 coordinate in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// String formats the point as "lat,lng".
func (p GeoPoint) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}

// LatLng converts the point to an s2.LatLng.
func (p GeoPoint) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(p.Lat, p.Lng)
}

// DestinationPoint walks distance meters from origin along the given initial bearing.
func DestinationPoint(origin GeoPoint, bearing, distance float64) GeoPoint {
	ll := origin.LatLng()
	lat1 := ll.Lat.Radians()
	lng1 := ll.Lng.Radians()
	brng := toRadians(bearing)
	d := distance / EarthRadiusMeters

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(brng))
	lng2 := lng1 + math.Atan2(
		math.Sin(brng)*math.Sin(d)*math.Cos(lat1),
		math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))

	out := s2.LatLng{Lat: s1.Angle(lat2), Lng: s1.Angle(lng2)}.Normalized()
	return GeoPoint{Lat: out.Lat.Degrees(), Lng: out.Lng.Degrees()}
}

// HeadingFromOrientation converts a device-orientation alpha reading to a compass heading.
// A nil alpha means the sensor has nothing to report and yields nil.
func HeadingFromOrientation(alpha *float64) *float64 {
	if alpha == nil || math.IsNaN(*alpha) || math.IsInf(*alpha, 0) {
		return nil
	}
	h := NormalizeDegrees(*alpha)
	return &h
}

// FormatDistance renders meters as "850m" below one kilometer and "1.2km" above.
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%dm", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1fkm", meters/1000)
}

// ClampX limits a projected X to the visible screen.
func ClampX(x float64) float64 {
	return clamp(x, -1, 1)
}

// ScreenPercent converts a projection to CSS-style percentages of the viewport,
// with (50, 50) at the centre.
func ScreenPercent(p Projection) (left, top float64) {
	return 50 + p.X*50, 50 + p.Y*50
}

// DirectionsURL returns a Google Maps walking directions link from origin to dest.
func DirectionsURL(origin, dest GeoPoint) string {
	return fmt.Sprintf("%s?api=1&origin=%g,%g&destination=%g,%g&travelmode=walking",
		directionsBase, origin.Lat, origin.Lng, dest.Lat, dest.Lng)
}
