// ABOUTME: Terminal UI formatting utilities
// ABOUTME: Provides human-readable output for places, AR markers and frames

package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harper/wander/internal/geo"
	"github.com/harper/wander/internal/models"
	"github.com/harper/wander/internal/nav"
)

// MinStripWidth is the narrowest AR strip that still has a centre and two edges.
const MinStripWidth = 3

// FormatPlace formats a catalog place, with its distance when known.
func FormatPlace(p *models.Place, distance *float64) string {
	if p == nil {
		return color.New(color.Faint).Sprint("(no place)")
	}
	coords := fmt.Sprintf("(%.4f, %.4f)", p.Latitude, p.Longitude)

	out := fmt.Sprintf("%s %s", color.GreenString(p.Name), color.New(color.Faint).Sprint(coords))
	if p.Address != nil && *p.Address != "" {
		out += " " + *p.Address
	}
	if distance != nil {
		out += " - " + color.CyanString(geo.FormatDistance(*distance))
	}
	return out
}

// FormatMarker formats one AR marker on a single line.
func FormatMarker(m nav.Marker) string {
	label := m.Label
	if label == "" {
		label = m.Key
	}

	dot := color.New(color.Faint).Sprint("○")
	name := label
	if m.InView {
		dot = color.GreenString("●")
		name = color.GreenString(label)
	}

	return fmt.Sprintf("%s %s %s %s %s",
		dot,
		name,
		color.CyanString(geo.FormatDistance(m.Distance)),
		fmt.Sprintf("%.0f°", m.Bearing),
		color.New(color.Faint).Sprintf("x=%+.2f scale=%.2f", m.Projection.X, m.Projection.Scale))
}

// FormatFrame formats a frame as a heading line followed by its markers.
func FormatFrame(f nav.Frame) string {
	var b strings.Builder

	header := fmt.Sprintf("heading %.0f° at %s", f.Heading, f.Location.String())
	if !f.At.IsZero() {
		header += " " + color.New(color.Faint).Sprintf("(%s)", FormatRelativeTime(f.At))
	}
	b.WriteString(color.New(color.Bold).Sprint(header))

	for _, m := range f.Markers {
		b.WriteString("\n  ")
		b.WriteString(FormatMarker(m))
	}
	return b.String()
}

// FormatStrip draws a one-line AR view width cells wide. The centre is the
// walker's heading and the edges are a full screen-width either side.
// Markers past an edge are drawn as arrows pointing towards them.
func FormatStrip(f nav.Frame, width int) string {
	if width < MinStripWidth {
		width = MinStripWidth
	}

	cells := []rune(strings.Repeat("-", width))
	cells[width/2] = '|'

	// Destination is drawn last so it wins a shared cell.
	ordered := make([]nav.Marker, 0, len(f.Markers))
	for _, m := range f.Markers {
		if m.Key != nav.KeyDestination {
			ordered = append(ordered, m)
		}
	}
	for _, m := range f.Markers {
		if m.Key == nav.KeyDestination {
			ordered = append(ordered, m)
		}
	}

	for _, m := range ordered {
		x := m.Projection.X
		switch {
		case x < -1:
			cells[0] = '<'
		case x > 1:
			cells[width-1] = '>'
		default:
			col := int(math.Round((geo.ClampX(x) + 1) / 2 * float64(width-1)))
			cells[col] = glyph(m.Key)
		}
	}

	return "[" + string(cells) + "]"
}

func glyph(key string) rune {
	switch key {
	case nav.KeyDestination:
		return 'D'
	case nav.KeyWaypoint:
		return 'W'
	}
	if key == "" {
		return '*'
	}
	return []rune(strings.ToUpper(key))[0]
}

var compassPoints = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// CompassPoint names the eight-wind direction nearest a bearing.
func CompassPoint(bearing float64) string {
	i := int(math.Round(geo.NormalizeDegrees(bearing)/45)) % len(compassPoints)
	return compassPoints[i]
}

// FormatRelativeTime formats a time as relative to now.
func FormatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	// Handle future times (clock skew, bad data)
	if diff < 0 {
		return color.YellowString("in the future")
	}

	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	}
	if diff < 24*time.Hour {
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := int(diff.Hours() / 24)
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
