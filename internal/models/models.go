// ABOUTME: Core data models for places, route steps and sensor readings
// ABOUTME: Provides validators and constructor functions for creating new entities

package models

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harper/wander/internal/geo"
	"github.com/oklog/ulid/v2"
)

// htmlTag matches markup the route provider leaves in step instructions.
var htmlTag = regexp.MustCompile(`</?[^>]+(>|$)`)

// ValidateCoordinates checks if latitude and longitude are within valid ranges.
func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return fmt.Errorf("coordinates cannot be NaN")
	}
	if math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return fmt.Errorf("coordinates cannot be infinite")
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateName checks if a name is valid (non-empty, within length limits).
// Note: This validates the raw input - callers should trim whitespace themselves if needed.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("name cannot be empty or whitespace")
	}
	if len(name) > 255 {
		return fmt.Errorf("name too long (max 255 characters)")
	}
	return nil
}

// ValidateHeading checks that an optional heading is a finite number of degrees.
func ValidateHeading(heading *float64) error {
	if heading == nil {
		return nil
	}
	if math.IsNaN(*heading) || math.IsInf(*heading, 0) {
		return fmt.Errorf("heading must be a finite number of degrees")
	}
	return nil
}

// ValidateAngles checks a heading and a bearing given together.
func ValidateAngles(heading, bearing float64) error {
	if err := ValidateHeading(&heading); err != nil {
		return fmt.Errorf("heading: %w", err)
	}
	if err := ValidateHeading(&bearing); err != nil {
		return fmt.Errorf("bearing: %w", err)
	}
	return nil
}

// ParsePoint parses a "lat,lng" pair and validates it.
func ParsePoint(s string) (geo.GeoPoint, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geo.GeoPoint{}, fmt.Errorf("invalid coordinates %q (use lat,lng)", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geo.GeoPoint{}, fmt.Errorf("invalid latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geo.GeoPoint{}, fmt.Errorf("invalid longitude: %w", err)
	}
	if err := ValidateCoordinates(lat, lng); err != nil {
		return geo.GeoPoint{}, err
	}
	return geo.GeoPoint{Lat: lat, Lng: lng}, nil
}

// Place is a destination the walker can navigate to.
type Place struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Address   *string   `json:"address,omitempty"`
}

// Point returns the place's coordinates.
func (p *Place) Point() geo.GeoPoint {
	return geo.GeoPoint{Lat: p.Latitude, Lng: p.Longitude}
}

// Waypoint is a single step of a route handed to us by the route provider.
type Waypoint struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Instruction string  `json:"instruction"`
}

// Point returns the waypoint's coordinates.
func (w Waypoint) Point() geo.GeoPoint {
	return geo.GeoPoint{Lat: w.Latitude, Lng: w.Longitude}
}

// Reading is one tick from the location and orientation sensors.
// Any field may be absent; the two sensors report independently.
type Reading struct {
	ID       ulid.ULID     `json:"id"`
	Location *geo.GeoPoint `json:"location,omitempty"`
	// Course is the heading reported by the location sensor.
	Course *float64 `json:"course,omitempty"`
	// Alpha is the compass reading from device orientation.
	Alpha      *float64  `json:"alpha,omitempty"`
	Speed      *float64  `json:"speed,omitempty"`
	Accuracy   *float64  `json:"accuracy,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// NewPlace creates a new place with a generated UUID.
func NewPlace(name string, lat, lng float64, address *string) *Place {
	return &Place{
		ID:        uuid.New(),
		Name:      name,
		Latitude:  lat,
		Longitude: lng,
		Address:   address,
	}
}

// NewWaypoint creates a route step, stripping any markup from the instruction.
func NewWaypoint(lat, lng float64, instruction string) Waypoint {
	return Waypoint{
		Latitude:    lat,
		Longitude:   lng,
		Instruction: StripMarkup(instruction),
	}
}

// NewReading creates a reading stamped with the current time.
func NewReading() *Reading {
	return NewReadingAt(time.Now())
}

// NewReadingAt creates a reading with a specific recorded time.
func NewReadingAt(recordedAt time.Time) *Reading {
	return &Reading{
		ID:         ulid.MustNew(ulid.Timestamp(recordedAt), ulid.DefaultEntropy()),
		RecordedAt: recordedAt,
	}
}

// StripMarkup removes HTML tags from route instructions.
func StripMarkup(s string) string {
	return strings.TrimSpace(htmlTag.ReplaceAllString(s, ""))
}
