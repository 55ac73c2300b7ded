// ABOUTME: Tests for navigation sessions and the sensor loop
// ABOUTME: Verifies heading selection, preconditions, waypoint advance and rendering

package nav

import (
	"context"
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harper/wander/internal/geo"
	"github.com/harper/wander/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() *log.Logger {
	return log.New(io.Discard)
}

func ptr(f float64) *float64 {
	return &f
}

func reading(loc *geo.GeoPoint, course, alpha *float64) models.Reading {
	r := models.NewReading()
	r.Location = loc
	r.Course = course
	r.Alpha = alpha
	return *r
}

func newTestSession(t *testing.T, route []models.Waypoint) *Session {
	t.Helper()
	dest := models.NewPlace("east", 0, 1, nil)
	s, err := NewSession(dest, route, Options{Logger: quiet()})
	require.NoError(t, err)
	return s
}

func TestNewSession_Defaults(t *testing.T) {
	s := newTestSession(t, nil)
	assert.Equal(t, geo.DefaultFieldOfView, s.opts.FieldOfView)
	assert.Equal(t, DefaultWaypointRadius, s.opts.WaypointRadius)
	assert.Equal(t, "east", s.Destination().Name)
}

func TestNewSession_Invalid(t *testing.T) {
	_, err := NewSession(nil, nil, Options{})
	assert.Error(t, err)

	dest := models.NewPlace("x", 0, 0, nil)
	_, err = NewSession(dest, nil, Options{FieldOfView: 400})
	assert.Error(t, err)

	_, err = NewSession(dest, nil, Options{WaypointRadius: -1})
	assert.Error(t, err)
}

func TestArrived_UsesDefaultRadius(t *testing.T) {
	s := newTestSession(t, nil)

	_, ok := s.Remaining()
	assert.False(t, ok)
	assert.False(t, s.Arrived())

	// about 11m short of the destination
	s.Apply(reading(&geo.GeoPoint{Lat: 0, Lng: 0.9999}, nil, nil))
	d, ok := s.Remaining()
	require.True(t, ok)
	assert.InDelta(t, 11.1, d, 0.1)
	assert.True(t, s.Arrived(), "a zero radius option falls back to the default")

	s.Apply(reading(&geo.GeoPoint{Lat: 0, Lng: 0.999}, nil, nil))
	assert.False(t, s.Arrived())
}

func TestFrame_RequiresLocation(t *testing.T) {
	s := newTestSession(t, nil)
	s.Apply(reading(nil, nil, ptr(90)))

	_, err := s.Frame()
	assert.ErrorIs(t, err, ErrNoLocation)
}

func TestFrame_RequiresHeading(t *testing.T) {
	s := newTestSession(t, nil)
	s.Apply(reading(&geo.GeoPoint{}, nil, nil))

	_, err := s.Frame()
	assert.ErrorIs(t, err, ErrNoHeading)
}

func TestFrame_DestinationMarker(t *testing.T) {
	s := newTestSession(t, nil)
	s.Apply(reading(&geo.GeoPoint{Lat: 0, Lng: 0}, nil, ptr(60)))

	f, err := s.Frame()
	require.NoError(t, err)
	require.Len(t, f.Markers, 1)

	m := f.Markers[0]
	assert.Equal(t, KeyDestination, m.Key)
	assert.Equal(t, "east", m.Label)
	assert.InDelta(t, 111195, m.Distance, 1)
	assert.InDelta(t, 90, m.Bearing, 1e-9)
	assert.False(t, m.InView, "30° off is outside a 50° field of view")
	assert.InDelta(t, 0.5, m.Projection.X, 1e-9)
	assert.Equal(t, 0.5, m.Projection.Scale)
	assert.Equal(t, geo.MarkerOffsetY, m.Projection.Y)
	assert.Empty(t, f.Visible())
}

func TestHeading_PrefersOrientation(t *testing.T) {
	s := newTestSession(t, nil)

	s.Apply(reading(&geo.GeoPoint{}, ptr(10), nil))
	h, ok := s.Heading()
	require.True(t, ok)
	assert.Equal(t, 10.0, h)

	s.Apply(reading(nil, ptr(20), ptr(95)))
	h, _ = s.Heading()
	assert.Equal(t, 95.0, h, "device orientation wins over course")

	s.Apply(reading(nil, ptr(30), nil))
	h, _ = s.Heading()
	assert.Equal(t, 95.0, h, "a later course does not displace a known compass heading")

	f, err := s.Frame()
	require.NoError(t, err)
	m, ok := f.Marker(KeyDestination)
	require.True(t, ok)
	assert.True(t, m.InView)
}

func TestApply_KeepsPreviousFields(t *testing.T) {
	s := newTestSession(t, nil)
	s.Apply(reading(&geo.GeoPoint{Lat: 1, Lng: 2}, nil, nil))
	s.Apply(reading(nil, nil, ptr(45)))

	loc, ok := s.Location()
	require.True(t, ok)
	assert.Equal(t, geo.GeoPoint{Lat: 1, Lng: 2}, loc)
}

func TestApply_IgnoresNaNCourse(t *testing.T) {
	s := newTestSession(t, nil)
	s.Apply(reading(&geo.GeoPoint{}, ptr(45), nil))
	nan := math.NaN()
	s.Apply(reading(nil, &nan, nil))

	h, ok := s.Heading()
	require.True(t, ok)
	assert.Equal(t, 45.0, h)
}

func TestWaypoint_MarkerAndAdvance(t *testing.T) {
	first := models.NewWaypoint(0, 0.001, "Head <b>east</b>")
	second := models.NewWaypoint(0, 0.5, "Continue")
	s := newTestSession(t, []models.Waypoint{first, second})

	s.Apply(reading(&geo.GeoPoint{Lat: 0, Lng: 0}, ptr(90), nil))
	f, err := s.Frame()
	require.NoError(t, err)
	require.Len(t, f.Markers, 2)

	wp, ok := f.Marker(KeyWaypoint)
	require.True(t, ok)
	assert.Equal(t, "Head east", wp.Label)
	assert.True(t, wp.InView)
	assert.InDelta(t, 150/wp.Distance, wp.Projection.Scale, 1e-9)

	// Within 15m of the first step.
	s.Apply(reading(&geo.GeoPoint{Lat: 0, Lng: 0.00095}, nil, nil))
	assert.Len(t, s.Route(), 1)

	f, err = s.Frame()
	require.NoError(t, err)
	wp, _ = f.Marker(KeyWaypoint)
	assert.Equal(t, "Continue", wp.Label)

	s.Apply(reading(&geo.GeoPoint{Lat: 0, Lng: 0.5}, nil, nil))
	assert.Empty(t, s.Route())
	f, err = s.Frame()
	require.NoError(t, err)
	assert.Len(t, f.Markers, 1)
}

func TestWaypoint_AdvancesPastSeveralAtOnce(t *testing.T) {
	route := []models.Waypoint{
		models.NewWaypoint(0, 0.00001, "a"),
		models.NewWaypoint(0, 0.00002, "b"),
		models.NewWaypoint(0, 0.3, "c"),
	}
	s := newTestSession(t, route)
	s.Apply(reading(&geo.GeoPoint{}, nil, nil))

	remaining := s.Route()
	require.Len(t, remaining, 1)
	assert.Equal(t, "c", remaining[0].Instruction)
}

func TestCompute(t *testing.T) {
	m, err := Compute(geo.GeoPoint{}, geo.GeoPoint{Lat: 0, Lng: 1}, ptr(90), 0)
	require.NoError(t, err)
	assert.True(t, m.InView)
	assert.InDelta(t, 0, m.Projection.X, 1e-9)

	_, err = Compute(geo.GeoPoint{}, geo.GeoPoint{Lat: 0, Lng: 1}, nil, 50)
	assert.ErrorIs(t, err, ErrNoHeading)

	m, err = Compute(geo.GeoPoint{}, geo.GeoPoint{Lat: 0, Lng: 1}, ptr(450), 50)
	require.NoError(t, err)
	assert.True(t, m.InView, "heading is normalized before use")
}

func TestRun_RendersFramesAndSkipsIncomplete(t *testing.T) {
	s := newTestSession(t, nil)
	ch := make(chan models.Reading, 4)
	ch <- reading(&geo.GeoPoint{}, nil, nil)
	ch <- reading(nil, nil, ptr(90))
	ch <- reading(&geo.GeoPoint{Lat: 0, Lng: 0.5}, nil, nil)
	close(ch)

	var frames []Frame
	stats, err := s.Run(context.Background(), ch, func(f Frame) error {
		frames = append(frames, f)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, Stats{Readings: 3, Frames: 2, Skipped: 1}, stats)
	require.Len(t, frames, 2)
	assert.Greater(t, frames[0].Markers[0].Distance, frames[1].Markers[0].Distance)
}

func TestRun_RenderErrorStops(t *testing.T) {
	s := newTestSession(t, nil)
	ch := make(chan models.Reading, 2)
	ch <- reading(&geo.GeoPoint{}, nil, ptr(90))
	ch <- reading(&geo.GeoPoint{}, nil, ptr(90))
	close(ch)

	boom := errors.New("boom")
	stats, err := s.Run(context.Background(), ch, func(Frame) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, stats.Readings)
}

func TestRun_Cancel(t *testing.T) {
	s := newTestSession(t, nil)
	ch := make(chan models.Reading)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := s.Run(ctx, ch, func(Frame) error { return nil })
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
