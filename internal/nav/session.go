// ABOUTME: Navigation session that turns sensor readings into AR markers
// ABOUTME: Tracks the latest location and heading explicitly and advances route steps

package nav

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harper/wander/internal/geo"
	"github.com/harper/wander/internal/models"
)

// ErrNoLocation is returned when no location reading has arrived yet.
var ErrNoLocation = errors.New("current location unavailable")

// ErrNoHeading is returned when neither the compass nor the location sensor reports a heading.
var ErrNoHeading = errors.New("heading unavailable")

// DefaultWaypointRadius is how close, in meters, the walker must get to a route step to pass it.
const DefaultWaypointRadius = 15.0

// Marker keys.
const (
	KeyDestination = "destination"
	KeyWaypoint    = "waypoint"
)

// Marker is one AR overlay element.
type Marker struct {
	Key        string         `json:"key"`
	Label      string         `json:"label"`
	Target     geo.GeoPoint   `json:"target"`
	Distance   float64        `json:"distance_m"`
	Bearing    float64        `json:"bearing"`
	InView     bool           `json:"in_view"`
	Projection geo.Projection `json:"projection"`
}

// Frame is everything needed to draw one tick of the overlay.
type Frame struct {
	At       time.Time    `json:"at"`
	Location geo.GeoPoint `json:"location"`
	Heading  float64      `json:"heading"`
	Markers  []Marker     `json:"markers"`
}

// Visible returns the markers inside the field of view.
func (f Frame) Visible() []Marker {
	var out []Marker
	for _, m := range f.Markers {
		if m.InView {
			out = append(out, m)
		}
	}
	return out
}

// Marker returns the marker with the given key.
func (f Frame) Marker(key string) (Marker, bool) {
	for _, m := range f.Markers {
		if m.Key == key {
			return m, true
		}
	}
	return Marker{}, false
}

// Options configures a session.
type Options struct {
	// FieldOfView in degrees. Zero means geo.DefaultFieldOfView.
	FieldOfView float64
	// WaypointRadius in meters. Zero means DefaultWaypointRadius.
	WaypointRadius float64
	Logger         *log.Logger
}

// Session holds the walker's latest sensor state and the targets being navigated to.
// It is not safe for concurrent use; Run owns it for the duration of a loop.
type Session struct {
	dest  *models.Place
	route []models.Waypoint
	opts  Options
	log   *log.Logger

	location *geo.GeoPoint
	// compass comes from device orientation and wins over course.
	compass *float64
	course  *float64
	at      time.Time
}

// NewSession creates a session navigating to dest, optionally via route steps.
func NewSession(dest *models.Place, route []models.Waypoint, opts Options) (*Session, error) {
	if dest == nil {
		return nil, fmt.Errorf("destination is required")
	}
	if opts.FieldOfView == 0 {
		opts.FieldOfView = geo.DefaultFieldOfView
	}
	if opts.FieldOfView < 0 || opts.FieldOfView > 360 {
		return nil, fmt.Errorf("field of view must be between 0 and 360 degrees")
	}
	if opts.WaypointRadius == 0 {
		opts.WaypointRadius = DefaultWaypointRadius
	}
	if opts.WaypointRadius < 0 {
		return nil, fmt.Errorf("waypoint radius cannot be negative")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	r := make([]models.Waypoint, len(route))
	copy(r, route)

	return &Session{
		dest:  dest,
		route: r,
		opts:  opts,
		log:   logger,
	}, nil
}

// Destination returns the place being navigated to.
func (s *Session) Destination() *models.Place {
	return s.dest
}

// Route returns the route steps not yet passed.
func (s *Session) Route() []models.Waypoint {
	out := make([]models.Waypoint, len(s.route))
	copy(out, s.route)
	return out
}

// Location returns the latest known location, if any.
func (s *Session) Location() (geo.GeoPoint, bool) {
	if s.location == nil {
		return geo.GeoPoint{}, false
	}
	return *s.location, true
}

// Remaining returns the distance from the latest location to the destination.
func (s *Session) Remaining() (float64, bool) {
	if s.location == nil {
		return 0, false
	}
	return geo.DistanceMeters(*s.location, s.dest.Point()), true
}

// Arrived reports whether the latest location is within the waypoint radius of the destination.
func (s *Session) Arrived() bool {
	d, ok := s.Remaining()
	return ok && d <= s.opts.WaypointRadius
}

// Heading returns the heading used for projection.
// Device orientation is preferred over the location sensor's course.
func (s *Session) Heading() (float64, bool) {
	if s.compass != nil {
		return *s.compass, true
	}
	if s.course != nil {
		return *s.course, true
	}
	return 0, false
}

// Apply merges a reading into the session state.
// Fields the reading does not carry keep their previous value.
func (s *Session) Apply(r models.Reading) {
	if r.Location != nil {
		loc := *r.Location
		s.location = &loc
	}
	if h := geo.HeadingFromOrientation(r.Alpha); h != nil {
		s.compass = h
	}
	if r.Course != nil && models.ValidateHeading(r.Course) == nil {
		c := geo.NormalizeDegrees(*r.Course)
		s.course = &c
	}
	if !r.RecordedAt.IsZero() {
		s.at = r.RecordedAt
	}
	s.advance()
}

// advance drops route steps the walker has reached.
func (s *Session) advance() {
	if s.location == nil {
		return
	}
	for len(s.route) > 0 {
		next := s.route[0]
		d := geo.DistanceMeters(*s.location, next.Point())
		if d > s.opts.WaypointRadius {
			return
		}
		s.log.Info("passed waypoint", "instruction", next.Instruction, "distance", geo.FormatDistance(d))
		s.route = s.route[1:]
	}
}

// Frame computes the markers for the current state.
func (s *Session) Frame() (Frame, error) {
	loc, ok := s.Location()
	if !ok {
		return Frame{}, ErrNoLocation
	}
	heading, ok := s.Heading()
	if !ok {
		return Frame{}, ErrNoHeading
	}

	f := Frame{
		At:       s.at,
		Location: loc,
		Heading:  heading,
	}
	f.Markers = append(f.Markers, project(KeyDestination, s.dest.Name, loc, s.dest.Point(), heading, s.opts.FieldOfView))
	if len(s.route) > 0 {
		next := s.route[0]
		f.Markers = append(f.Markers, project(KeyWaypoint, next.Instruction, loc, next.Point(), heading, s.opts.FieldOfView))
	}
	return f, nil
}

// Compute builds a single marker from explicit inputs.
// A nil heading is rejected rather than projected.
func Compute(current, target geo.GeoPoint, heading *float64, fieldOfView float64) (Marker, error) {
	if heading == nil {
		return Marker{}, ErrNoHeading
	}
	if err := models.ValidateHeading(heading); err != nil {
		return Marker{}, err
	}
	if fieldOfView == 0 {
		fieldOfView = geo.DefaultFieldOfView
	}
	return project(KeyDestination, "", current, target, geo.NormalizeDegrees(*heading), fieldOfView), nil
}

func project(key, label string, from, to geo.GeoPoint, heading, fov float64) Marker {
	distance := geo.DistanceMeters(from, to)
	bearing := geo.BearingDegrees(from, to)
	return Marker{
		Key:        key,
		Label:      label,
		Target:     to,
		Distance:   distance,
		Bearing:    bearing,
		InView:     geo.IsInView(heading, bearing, fov),
		Projection: geo.ProjectToScreen(bearing, heading, distance),
	}
}
