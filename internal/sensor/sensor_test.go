// ABOUTME: Tests for track parsing, replay sources and simulated walks
// ABOUTME: Verifies validation, ordering, pacing and cancellation

package sensor

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harper/wander/internal/geo"
	"github.com/harper/wander/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTrack = `
name: loop downtown
destination:
  name: Willis Tower
  lat: 41.8789
  lng: -87.6359
  address: 233 S Wacker Dr
route:
  - lat: 41.8800
    lng: -87.6300
    instruction: Head <b>west</b> on Adams St
readings:
  - offset: 0s
    lat: 41.8810
    lng: -87.6280
    course: 250
  - offset: 2s
    alpha: 260
  - offset: 5s
    lat: 41.8805
    lng: -87.6290
    alpha: 255
    speed: 1.4
    accuracy: 5
`

func collect(t *testing.T, ch <-chan models.Reading) []models.Reading {
	t.Helper()
	var out []models.Reading
	timeout := time.After(5 * time.Second)
	for {
		select {
		case r, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, r)
		case <-timeout:
			t.Fatal("timed out waiting for readings")
		}
	}
}

func TestParseTrack(t *testing.T) {
	track, err := ParseTrack([]byte(sampleTrack))
	require.NoError(t, err)

	assert.Equal(t, "loop downtown", track.Name)
	require.NotNil(t, track.Destination)
	assert.Equal(t, "Willis Tower", track.Destination.Name)
	require.Len(t, track.Route, 1)
	require.Len(t, track.Readings, 3)
	assert.Equal(t, 2*time.Second, track.Readings[1].Offset)
	assert.Nil(t, track.Readings[1].Lat)
	assert.Equal(t, 5*time.Second, track.Duration())
}

func TestParseTrack_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":          "readings: [",
		"half coordinate":   "readings:\n  - offset: 0s\n    lat: 10\n",
		"bad latitude":      "readings:\n  - offset: 0s\n    lat: 100\n    lng: 0\n",
		"backwards offsets": "readings:\n  - offset: 5s\n  - offset: 1s\n",
		"negative offset":   "readings:\n  - offset: -1s\n",
		"bad destination":   "destination:\n  name: ''\n  lat: 0\n  lng: 0\nreadings: []\n",
		"bad route":         "route:\n  - lat: 0\n    lng: 500\nreadings: []\n",
		"nan course":        "readings:\n  - offset: 0s\n    course: .nan\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseTrack([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadTrack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTrack), 0600))

	track, err := LoadTrack(path)
	require.NoError(t, err)
	assert.Len(t, track.Readings, 3)

	_, err = LoadTrack(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestTrack_DestinationAndWaypoints(t *testing.T) {
	track, err := ParseTrack([]byte(sampleTrack))
	require.NoError(t, err)

	place, err := track.DestinationPlace()
	require.NoError(t, err)
	assert.Equal(t, "Willis Tower", place.Name)
	require.NotNil(t, place.Address)
	assert.Equal(t, "233 S Wacker Dr", *place.Address)

	waypoints := track.Waypoints()
	require.Len(t, waypoints, 1)
	assert.Equal(t, "Head west on Adams St", waypoints[0].Instruction)

	empty := &Track{}
	_, err = empty.DestinationPlace()
	assert.ErrorIs(t, err, ErrNoDestination)
}

func TestTrack_ReadingAt(t *testing.T) {
	track, err := ParseTrack([]byte(sampleTrack))
	require.NoError(t, err)
	start := time.Date(2024, 12, 14, 15, 0, 0, 0, time.UTC)

	r := track.ReadingAt(1, start)
	assert.Nil(t, r.Location)
	require.NotNil(t, r.Alpha)
	assert.Equal(t, 260.0, *r.Alpha)
	assert.True(t, r.RecordedAt.Equal(start.Add(2*time.Second)))

	r = track.ReadingAt(2, start)
	require.NotNil(t, r.Location)
	assert.Equal(t, 41.8805, r.Location.Lat)
	require.NotNil(t, r.Accuracy)
	assert.Equal(t, 5.0, *r.Accuracy)
}

func TestTrack_Locations(t *testing.T) {
	track, err := ParseTrack([]byte(sampleTrack))
	require.NoError(t, err)

	locs := track.Locations()
	require.Len(t, locs, 2)
	assert.Equal(t, geo.GeoPoint{Lat: 41.8810, Lng: -87.6280}, locs[0])
}

func TestTrack_MarshalRoundTrip(t *testing.T) {
	track, err := ParseTrack([]byte(sampleTrack))
	require.NoError(t, err)

	data, err := track.Marshal()
	require.NoError(t, err)

	again, err := ParseTrack(data)
	require.NoError(t, err)
	assert.Equal(t, track, again)
}

func TestStatic_EmitsOnce(t *testing.T) {
	r := models.NewReading()
	src := &Static{Reading: *r}

	ch, err := src.Readings(context.Background())
	require.NoError(t, err)

	got := collect(t, ch)
	require.Len(t, got, 1)
	assert.Equal(t, r.ID, got[0].ID)
}

func TestReplay_EmitsInOrderWithoutWaiting(t *testing.T) {
	track, err := ParseTrack([]byte(sampleTrack))
	require.NoError(t, err)

	start := time.Date(2024, 12, 14, 15, 0, 0, 0, time.UTC)
	src := NewReplay(track, 0)
	src.Start = start

	began := time.Now()
	ch, err := src.Readings(context.Background())
	require.NoError(t, err)
	got := collect(t, ch)

	assert.Less(t, time.Since(began), time.Second)
	require.Len(t, got, 3)
	for i, r := range got {
		assert.True(t, r.RecordedAt.Equal(start.Add(track.Readings[i].Offset)))
	}
}

func TestReplay_HonoursSpeed(t *testing.T) {
	track := &Track{Readings: []TrackReading{{Offset: 0}, {Offset: 200 * time.Millisecond}}}
	src := NewReplay(track, 2)

	began := time.Now()
	ch, err := src.Readings(context.Background())
	require.NoError(t, err)
	got := collect(t, ch)

	require.Len(t, got, 2)
	assert.GreaterOrEqual(t, time.Since(began), 90*time.Millisecond)
}

func TestReplay_StopsOnCancel(t *testing.T) {
	track := &Track{Readings: []TrackReading{{Offset: 0}, {Offset: time.Hour}}}
	src := NewReplay(track, 1)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := src.Readings(ctx)
	require.NoError(t, err)

	first := <-ch
	assert.False(t, first.RecordedAt.IsZero())
	cancel()

	got := collect(t, ch)
	assert.Empty(t, got)
}

func TestReplay_Errors(t *testing.T) {
	_, err := (&Replay{}).Readings(context.Background())
	assert.Error(t, err)

	_, err = NewReplay(&Track{}, -1).Readings(context.Background())
	assert.Error(t, err)
}

func TestSimulate_WalksToDestination(t *testing.T) {
	start := geo.GeoPoint{Lat: 41.8810, Lng: -87.6280}
	dest := models.NewPlace("Willis Tower", 41.8789, -87.6359, nil)

	opts := DefaultSimulateOptions()
	track, err := Simulate(start, dest, opts)
	require.NoError(t, err)
	require.NoError(t, track.Validate())

	locs := track.Locations()
	require.NotEmpty(t, locs)
	assert.Equal(t, start, locs[0])
	last := locs[len(locs)-1]
	assert.InDelta(t, 0, geo.DistanceMeters(last, dest.Point()), 1e-6)

	for i := 1; i < len(locs); i++ {
		step := geo.DistanceMeters(locs[i-1], locs[i])
		assert.LessOrEqual(t, step, opts.StepMeters+1e-6)
	}

	first := track.Readings[0]
	require.NotNil(t, first.Course)
	require.NotNil(t, first.Alpha)
	assert.InDelta(t, opts.Sway, geo.RelativeBearing(*first.Alpha, *first.Course), 1e-9)
	assert.Equal(t, time.Duration(len(locs)-1)*opts.Interval, track.Duration())
}

func TestSimulate_Errors(t *testing.T) {
	start := geo.GeoPoint{Lat: 0, Lng: 0}
	dest := models.NewPlace("far", 0, 90, nil)

	_, err := Simulate(start, nil, DefaultSimulateOptions())
	assert.ErrorIs(t, err, ErrNoDestination)

	_, err = Simulate(start, dest, SimulateOptions{StepMeters: 0})
	assert.Error(t, err)

	_, err = Simulate(start, dest, DefaultSimulateOptions())
	assert.Error(t, err, "a quarter of the equator is too long to walk in 7m steps")

	tiny := DefaultSimulateOptions()
	tiny.StepMeters = 1e-20
	_, err = Simulate(start, models.NewPlace("near", 0, 1, nil), tiny)
	assert.Error(t, err, "a step this small must trip the step limit")

	for _, step := range []float64{math.NaN(), math.Inf(1), -1} {
		opts := DefaultSimulateOptions()
		opts.StepMeters = step
		_, err = Simulate(start, dest, opts)
		assert.Error(t, err, "step %v", step)
	}

	swaying := DefaultSimulateOptions()
	swaying.Sway = math.NaN()
	_, err = Simulate(start, models.NewPlace("near", 0, 0.001, nil), swaying)
	assert.Error(t, err)

	opts := DefaultSimulateOptions()
	opts.Interval = -time.Second
	_, err = Simulate(start, dest, opts)
	assert.Error(t, err)
}
