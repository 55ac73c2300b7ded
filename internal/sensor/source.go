// ABOUTME: Sensor sources delivering location and orientation readings
// ABOUTME: Static one-shot readings and paced replay of recorded tracks

package sensor

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harper/wander/internal/models"
)

// Source delivers sensor readings on its own cadence.
// The returned channel is closed when the source is exhausted or ctx is cancelled.
type Source interface {
	Readings(ctx context.Context) (<-chan models.Reading, error)
}

// Static emits a single reading.
type Static struct {
	Reading models.Reading
}

// Compile-time checks that the sources implement Source.
var (
	_ Source = (*Static)(nil)
	_ Source = (*Replay)(nil)
)

// Readings implements Source.
func (s *Static) Readings(ctx context.Context) (<-chan models.Reading, error) {
	ch := make(chan models.Reading, 1)
	ch <- s.Reading
	close(ch)
	return ch, nil
}

// Replay plays a track back in real time, scaled by Speed.
type Replay struct {
	Track *Track
	// Speed multiplies playback rate. 2 plays twice as fast; 0 emits without waiting.
	Speed float64
	// Start anchors reading timestamps. Defaults to the time playback begins.
	Start  time.Time
	Logger *log.Logger
}

// NewReplay creates a replay source for a track.
func NewReplay(track *Track, speed float64) *Replay {
	return &Replay{Track: track, Speed: speed}
}

// Readings implements Source.
func (r *Replay) Readings(ctx context.Context) (<-chan models.Reading, error) {
	if r.Track == nil {
		return nil, errors.New("replay has no track")
	}
	if r.Speed < 0 {
		return nil, errors.New("replay speed cannot be negative")
	}

	start := r.Start
	if start.IsZero() {
		start = time.Now()
	}
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	ch := make(chan models.Reading)
	go func() {
		defer close(ch)

		begun := time.Now()
		for i := range r.Track.Readings {
			if wait := r.delay(i, begun); wait > 0 {
				timer := time.NewTimer(wait)
				select {
				case <-ctx.Done():
					timer.Stop()
					return
				case <-timer.C:
				}
			}

			reading := r.Track.ReadingAt(i, start)
			select {
			case <-ctx.Done():
				return
			case ch <- reading:
				logger.Debug("replayed reading", "index", i, "offset", r.Track.Readings[i].Offset)
			}
		}
	}()
	return ch, nil
}

// delay returns how long to wait before emitting reading i.
func (r *Replay) delay(i int, begun time.Time) time.Duration {
	if r.Speed == 0 {
		return 0
	}
	due := time.Duration(float64(r.Track.Readings[i].Offset) / r.Speed)
	return due - time.Since(begun)
}
