// ABOUTME: YAML track files describing a recorded or synthetic walk
// ABOUTME: Holds the destination, the route steps and timed sensor readings

package sensor

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/harper/wander/internal/geo"
	"github.com/harper/wander/internal/models"
	"gopkg.in/yaml.v3"
)

// ErrNoDestination is returned when a track does not name a destination.
var ErrNoDestination = errors.New("track has no destination")

// Track is a replayable walk.
type Track struct {
	Name        string         `yaml:"name,omitempty"`
	Destination *TrackPlace    `yaml:"destination,omitempty"`
	Route       []TrackStep    `yaml:"route,omitempty"`
	Readings    []TrackReading `yaml:"readings"`
}

// TrackPlace is the destination of a track.
type TrackPlace struct {
	Name    string  `yaml:"name"`
	Lat     float64 `yaml:"lat"`
	Lng     float64 `yaml:"lng"`
	Address string  `yaml:"address,omitempty"`
}

// TrackStep is one route step as delivered by the route provider.
type TrackStep struct {
	Lat         float64 `yaml:"lat"`
	Lng         float64 `yaml:"lng"`
	Instruction string  `yaml:"instruction,omitempty"`
}

// TrackReading is a sensor tick at an offset from the start of the track.
type TrackReading struct {
	Offset   time.Duration `yaml:"offset"`
	Lat      *float64      `yaml:"lat,omitempty"`
	Lng      *float64      `yaml:"lng,omitempty"`
	Course   *float64      `yaml:"course,omitempty"`
	Alpha    *float64      `yaml:"alpha,omitempty"`
	Speed    *float64      `yaml:"speed,omitempty"`
	Accuracy *float64      `yaml:"accuracy,omitempty"`
}

// LoadTrack reads and validates a track file.
func LoadTrack(path string) (*Track, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the user on purpose
	if err != nil {
		return nil, fmt.Errorf("read track: %w", err)
	}
	return ParseTrack(data)
}

// ParseTrack decodes and validates track YAML.
func ParseTrack(data []byte) (*Track, error) {
	var t Track
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse track: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Marshal encodes the track as YAML.
func (t *Track) Marshal() ([]byte, error) {
	return yaml.Marshal(t)
}

// Validate checks coordinates, headings and reading order.
func (t *Track) Validate() error {
	if t.Destination != nil {
		if err := models.ValidateName(t.Destination.Name); err != nil {
			return fmt.Errorf("destination: %w", err)
		}
		if err := models.ValidateCoordinates(t.Destination.Lat, t.Destination.Lng); err != nil {
			return fmt.Errorf("destination: %w", err)
		}
	}

	for i, step := range t.Route {
		if err := models.ValidateCoordinates(step.Lat, step.Lng); err != nil {
			return fmt.Errorf("route step %d: %w", i, err)
		}
	}

	var last time.Duration
	for i, r := range t.Readings {
		if (r.Lat == nil) != (r.Lng == nil) {
			return fmt.Errorf("reading %d: lat and lng must be given together", i)
		}
		if r.Lat != nil {
			if err := models.ValidateCoordinates(*r.Lat, *r.Lng); err != nil {
				return fmt.Errorf("reading %d: %w", i, err)
			}
		}
		if err := models.ValidateHeading(r.Course); err != nil {
			return fmt.Errorf("reading %d course: %w", i, err)
		}
		if err := models.ValidateHeading(r.Alpha); err != nil {
			return fmt.Errorf("reading %d alpha: %w", i, err)
		}
		if r.Offset < 0 {
			return fmt.Errorf("reading %d: negative offset %s", i, r.Offset)
		}
		if r.Offset < last {
			return fmt.Errorf("reading %d: offset %s goes back in time", i, r.Offset)
		}
		last = r.Offset
	}
	return nil
}

// DestinationPlace returns the track's destination as a place.
func (t *Track) DestinationPlace() (*models.Place, error) {
	if t.Destination == nil {
		return nil, ErrNoDestination
	}
	var address *string
	if t.Destination.Address != "" {
		a := t.Destination.Address
		address = &a
	}
	return models.NewPlace(t.Destination.Name, t.Destination.Lat, t.Destination.Lng, address), nil
}

// Waypoints returns the route steps in order.
func (t *Track) Waypoints() []models.Waypoint {
	out := make([]models.Waypoint, len(t.Route))
	for i, step := range t.Route {
		out[i] = models.NewWaypoint(step.Lat, step.Lng, step.Instruction)
	}
	return out
}

// ReadingAt converts the i-th track reading to a sensor reading anchored at start.
func (t *Track) ReadingAt(i int, start time.Time) models.Reading {
	tr := t.Readings[i]
	r := models.NewReadingAt(start.Add(tr.Offset))
	if tr.Lat != nil && tr.Lng != nil {
		r.Location = &geo.GeoPoint{Lat: *tr.Lat, Lng: *tr.Lng}
	}
	r.Course = tr.Course
	r.Alpha = tr.Alpha
	r.Speed = tr.Speed
	r.Accuracy = tr.Accuracy
	return *r
}

// Locations returns every reading location in order.
func (t *Track) Locations() []geo.GeoPoint {
	var out []geo.GeoPoint
	for _, r := range t.Readings {
		if r.Lat != nil && r.Lng != nil {
			out = append(out, geo.GeoPoint{Lat: *r.Lat, Lng: *r.Lng})
		}
	}
	return out
}

// Duration is the offset of the last reading.
func (t *Track) Duration() time.Duration {
	if len(t.Readings) == 0 {
		return 0
	}
	return t.Readings[len(t.Readings)-1].Offset
}
