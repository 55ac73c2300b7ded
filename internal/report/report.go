// ABOUTME: Markdown walk report for tracks
// ABOUTME: Plays a track through a navigation session and tabulates each frame

package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harper/wander/internal/geo"
	"github.com/harper/wander/internal/nav"
	"github.com/harper/wander/internal/sensor"
)

// Markdown renders a track as a walk report. Readings that cannot produce a
// frame yet are counted but not tabulated.
func Markdown(track *sensor.Track, opts nav.Options, generated time.Time) ([]byte, error) {
	dest, err := track.DestinationPlace()
	if err != nil {
		return nil, err
	}
	session, err := nav.NewSession(dest, track.Waypoints(), opts)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder

	title := track.Name
	if title == "" {
		title = "Walk to " + dest.Name
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", generated.UTC().Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("- Destination: %s (%.4f, %.4f)\n", dest.Name, dest.Latitude, dest.Longitude))
	if dest.Address != nil {
		sb.WriteString(fmt.Sprintf("- Address: %s\n", *dest.Address))
	}
	sb.WriteString(fmt.Sprintf("- Readings: %d over %s\n\n", len(track.Readings), track.Duration()))

	if len(track.Route) > 0 {
		sb.WriteString("## Route\n\n")
		for i, w := range track.Waypoints() {
			instruction := w.Instruction
			if instruction == "" {
				instruction = "-"
			}
			sb.WriteString(fmt.Sprintf("%d. %s (%.4f, %.4f)\n", i+1, instruction, w.Latitude, w.Longitude))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Frames\n\n")

	var skipped, rows int
	start := time.Unix(0, 0).UTC()
	for i := range track.Readings {
		offset := track.Readings[i].Offset
		session.Apply(track.ReadingAt(i, start))

		frame, err := session.Frame()
		if errors.Is(err, nav.ErrNoLocation) || errors.Is(err, nav.ErrNoHeading) {
			skipped++
			continue
		} else if err != nil {
			return nil, err
		}
		m, _ := frame.Marker(nav.KeyDestination)

		if rows == 0 {
			sb.WriteString("| Offset | Coordinates | Heading | To destination | Bearing | On screen |\n")
			sb.WriteString("|--------|-------------|---------|----------------|---------|-----------|\n")
		}
		rows++
		sb.WriteString(fmt.Sprintf("| %s | (%.4f, %.4f) | %.0f° | %s | %.0f° | %s |\n",
			offset, frame.Location.Lat, frame.Location.Lng, frame.Heading,
			geo.FormatDistance(m.Distance), m.Bearing, onScreen(m)))
	}

	if rows == 0 {
		sb.WriteString("No frames: the track never reported both a location and a heading.\n")
	}
	if skipped > 0 {
		sb.WriteString(fmt.Sprintf("\n%d readings skipped waiting for location or heading.\n", skipped))
	}

	if remaining, ok := session.Remaining(); ok {
		sb.WriteString("\n")
		if session.Arrived() {
			sb.WriteString(fmt.Sprintf("Arrived at %s.\n", dest.Name))
		} else {
			sb.WriteString(fmt.Sprintf("Finished %s from %s.\n", geo.FormatDistance(remaining), dest.Name))
		}
	}

	return []byte(sb.String()), nil
}

// onScreen describes where a marker sits relative to the view.
func onScreen(m nav.Marker) string {
	switch {
	case m.InView:
		return "yes"
	case m.Projection.X < 0:
		return "no, turn left"
	default:
		return "no, turn right"
	}
}
