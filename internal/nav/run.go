// ABOUTME: Sensor loop driving a navigation session
// ABOUTME: Recomputes and renders a frame for every reading until the source ends

package nav

import (
	"context"
	"errors"
	"fmt"

	"github.com/harper/wander/internal/models"
)

// RenderFunc draws one frame. Returning an error stops the loop.
type RenderFunc func(Frame) error

// Stats summarizes a finished loop.
type Stats struct {
	Readings int
	Frames   int
	Skipped  int
}

// Run applies readings to the session and renders a frame after each one.
// Readings that leave the session without a location or heading are skipped.
// Run returns when the channel closes, ctx is cancelled, or render fails.
func (s *Session) Run(ctx context.Context, readings <-chan models.Reading, render RenderFunc) (Stats, error) {
	var stats Stats
	for {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		case r, ok := <-readings:
			if !ok {
				s.log.Debug("sensor stream ended", "readings", stats.Readings, "frames", stats.Frames)
				return stats, nil
			}
			stats.Readings++
			s.Apply(r)

			frame, err := s.Frame()
			if errors.Is(err, ErrNoLocation) || errors.Is(err, ErrNoHeading) {
				stats.Skipped++
				s.log.Debug("waiting for sensors", "reason", err)
				continue
			}
			if err != nil {
				return stats, err
			}

			if err := render(frame); err != nil {
				return stats, fmt.Errorf("render frame: %w", err)
			}
			stats.Frames++
		}
	}
}
