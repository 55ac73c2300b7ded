// ABOUTME: Synthetic walking tracks toward a destination
// ABOUTME: Used for demos and for exercising the navigation loop without a device

package sensor

import (
	"errors"
	"math"
	"time"

	"github.com/harper/wander/internal/geo"
	"github.com/harper/wander/internal/models"
)

// maxSimulatedSteps bounds the size of a synthetic track.
const maxSimulatedSteps = 10000

// SimulateOptions tunes a synthetic walk.
type SimulateOptions struct {
	// StepMeters is the distance covered between readings.
	StepMeters float64
	// Interval is the time between readings.
	Interval time.Duration
	// Sway swings the device heading alternately left and right of the walking direction, in degrees.
	Sway float64
}

// DefaultSimulateOptions is a brisk walk with a phone held mostly straight ahead.
func DefaultSimulateOptions() SimulateOptions {
	return SimulateOptions{
		StepMeters: 7,
		Interval:   5 * time.Second,
		Sway:       15,
	}
}

// Simulate builds a track walking in a straight line from start to dest.
// Every reading carries a location, a course and an orientation alpha.
func Simulate(start geo.GeoPoint, dest *models.Place, opts SimulateOptions) (*Track, error) {
	if dest == nil {
		return nil, ErrNoDestination
	}
	if math.IsNaN(opts.StepMeters) || math.IsInf(opts.StepMeters, 0) || opts.StepMeters <= 0 {
		return nil, errors.New("step must be a positive number of meters")
	}
	if math.IsNaN(opts.Sway) || math.IsInf(opts.Sway, 0) {
		return nil, errors.New("sway must be a finite number of degrees")
	}
	if opts.Interval < 0 {
		return nil, errors.New("interval cannot be negative")
	}

	target := dest.Point()
	total := geo.DistanceMeters(start, target)
	// Compared as a float so tiny steps cannot overflow the conversion.
	if math.Ceil(total/opts.StepMeters) > maxSimulatedSteps {
		return nil, errors.New("walk too long to simulate; increase the step")
	}
	steps := int(math.Ceil(total / opts.StepMeters))

	track := &Track{
		Name: "simulated walk to " + dest.Name,
		Destination: &TrackPlace{
			Name: dest.Name,
			Lat:  target.Lat,
			Lng:  target.Lng,
		},
	}
	if dest.Address != nil {
		track.Destination.Address = *dest.Address
	}

	var speed *float64
	if opts.Interval > 0 {
		mps := opts.StepMeters / opts.Interval.Seconds()
		speed = &mps
	}

	pos := start
	for i := 0; i <= steps; i++ {
		course := geo.BearingDegrees(pos, target)
		sway := opts.Sway
		if i%2 == 1 {
			sway = -sway
		}
		alpha := geo.NormalizeDegrees(course + sway)
		lat, lng := pos.Lat, pos.Lng

		track.Readings = append(track.Readings, TrackReading{
			Offset: time.Duration(i) * opts.Interval,
			Lat:    &lat,
			Lng:    &lng,
			Course: &course,
			Alpha:  &alpha,
			Speed:  speed,
		})

		remaining := geo.DistanceMeters(pos, target)
		if remaining <= opts.StepMeters {
			pos = target
		} else {
			pos = geo.DestinationPoint(pos, course, opts.StepMeters)
		}
	}

	return track, nil
}
