// ABOUTME: GeoJSON generation utilities
// ABOUTME: Converts navigation frames and walking tracks to GeoJSON FeatureCollections

package geojson

import (
	"encoding/json"
	"time"

	"github.com/harper/wander/internal/geo"
	"github.com/harper/wander/internal/models"
	"github.com/harper/wander/internal/nav"
	"github.com/harper/wander/internal/sensor"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature kinds, stored in the "kind" property.
const (
	KindWalker      = "walker"
	KindMarker      = "marker"
	KindSightLine   = "sight_line"
	KindRoute       = "route"
	KindWaypoint    = "waypoint"
	KindDestination = "destination"
	KindPath        = "path"
)

func point(p geo.GeoPoint) orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

// FrameFeatureCollection renders one frame: the walker, every marker target with a
// sight line from the walker, and the remaining route if given.
func FrameFeatureCollection(frame nav.Frame, route []models.Waypoint) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	walker := geojson.NewFeature(point(frame.Location))
	walker.Properties["kind"] = KindWalker
	walker.Properties["heading"] = frame.Heading
	if !frame.At.IsZero() {
		walker.Properties["recorded_at"] = frame.At.UTC().Format(time.RFC3339)
	}
	fc.Append(walker)

	for _, m := range frame.Markers {
		f := geojson.NewFeature(point(m.Target))
		f.Properties["kind"] = KindMarker
		f.Properties["key"] = m.Key
		f.Properties["label"] = m.Label
		f.Properties["distance_m"] = m.Distance
		f.Properties["bearing"] = m.Bearing
		f.Properties["in_view"] = m.InView
		f.Properties["x"] = m.Projection.X
		f.Properties["scale"] = m.Projection.Scale
		fc.Append(f)

		line := geojson.NewFeature(orb.LineString{point(frame.Location), point(m.Target)})
		line.Properties["kind"] = KindSightLine
		line.Properties["key"] = m.Key
		fc.Append(line)
	}

	if len(route) > 0 {
		ls := orb.LineString{point(frame.Location)}
		for _, w := range route {
			ls = append(ls, point(w.Point()))
		}
		f := geojson.NewFeature(ls)
		f.Properties["kind"] = KindRoute
		f.Properties["steps"] = len(route)
		fc.Append(f)
	}

	return fc
}

// TrackFeatureCollection renders a track as its walked path, its route steps and its destination.
// A path needs at least two located readings.
func TrackFeatureCollection(track *sensor.Track) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	locs := track.Locations()
	if len(locs) >= 2 {
		ls := make(orb.LineString, len(locs))
		for i, p := range locs {
			ls[i] = point(p)
		}
		f := geojson.NewFeature(ls)
		f.Properties["kind"] = KindPath
		f.Properties["name"] = track.Name
		f.Properties["point_count"] = len(locs)
		f.Properties["duration_s"] = track.Duration().Seconds()
		fc.Append(f)
	}

	for i, w := range track.Waypoints() {
		f := geojson.NewFeature(point(w.Point()))
		f.Properties["kind"] = KindWaypoint
		f.Properties["step"] = i + 1
		f.Properties["instruction"] = w.Instruction
		fc.Append(f)
	}

	if track.Destination != nil {
		f := geojson.NewFeature(orb.Point{track.Destination.Lng, track.Destination.Lat})
		f.Properties["kind"] = KindDestination
		f.Properties["name"] = track.Destination.Name
		if track.Destination.Address != "" {
			f.Properties["address"] = track.Destination.Address
		}
		fc.Append(f)
	}

	return fc
}

// ToJSON serializes a FeatureCollection to JSON.
func ToJSON(fc *geojson.FeatureCollection) ([]byte, error) {
	return fc.MarshalJSON()
}

// ToJSONIndent serializes a FeatureCollection to indented JSON.
func ToJSONIndent(fc *geojson.FeatureCollection) ([]byte, error) {
	return json.MarshalIndent(fc, "", "  ")
}
