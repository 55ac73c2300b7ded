// ABOUTME: MCP navigation tool definitions and handlers
// ABOUTME: One-shot AR frames, walking directions links and destination search

package mcp

import (
	"context"
	"fmt"

	"github.com/harper/wander/internal/geo"
	"github.com/harper/wander/internal/models"
	"github.com/harper/wander/internal/nav"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NavigateInput defines input for the navigate tool.
type NavigateInput struct {
	FromLat     float64  `json:"from_lat"`
	FromLng     float64  `json:"from_lng"`
	Destination string   `json:"destination"`
	Heading     *float64 `json:"heading,omitempty"`
	Alpha       *float64 `json:"alpha,omitempty"`
}

// NavigateOutput defines output for the navigate tool.
type NavigateOutput struct {
	Destination   PlaceOutput `json:"destination"`
	Heading       float64     `json:"heading"`
	Marker        nav.Marker  `json:"marker"`
	Left          float64     `json:"left"`
	Top           float64     `json:"top"`
	DirectionsURL string      `json:"directions_url"`
}

// DirectionsInput defines input for the directions_url tool.
type DirectionsInput struct {
	FromLat     float64 `json:"from_lat"`
	FromLng     float64 `json:"from_lng"`
	Destination string  `json:"destination"`
}

// DirectionsOutput defines output for the directions_url tool.
type DirectionsOutput struct {
	Destination string `json:"destination"`
	URL         string `json:"url"`
}

// SearchPlacesInput defines input for the search_places tool.
type SearchPlacesInput struct {
	Query   string   `json:"query,omitempty"`
	Limit   int      `json:"limit,omitempty"`
	NearLat *float64 `json:"near_lat,omitempty"`
	NearLng *float64 `json:"near_lng,omitempty"`
}

// PlaceOutput defines a place in tool output.
type PlaceOutput struct {
	Name           string   `json:"name"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	Address        *string  `json:"address,omitempty"`
	DistanceMeters *float64 `json:"distance_m,omitempty"`
}

// ListPlacesOutput defines output for place listings.
type ListPlacesOutput struct {
	Places []PlaceOutput `json:"places"`
	Count  int           `json:"count"`
}

func placeOutput(p *models.Place) PlaceOutput {
	return PlaceOutput{
		Name:      p.Name,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Address:   p.Address,
	}
}

var destinationSchema = map[string]interface{}{
	"type":        "string",
	"description": "Destination place name from the catalog, or a 'lat,lng' pair",
}

func (s *Server) registerNavigateTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "navigate",
		Description: "Compute the AR marker for a destination from the walker's location and heading. Device orientation alpha wins over the location heading when both are given.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"from_lat":    coordinateSchema("Walker latitude (-90 to 90)"),
				"from_lng":    coordinateSchema("Walker longitude (-180 to 180)"),
				"destination": destinationSchema,
				"heading":     degreesSchema("Optional heading reported by the location sensor"),
				"alpha":       degreesSchema("Optional compass alpha from device orientation"),
			},
			"required": []string{"from_lat", "from_lng", "destination"},
		},
	}, s.handleNavigate)
}

func (s *Server) handleNavigate(_ context.Context, _ *mcp.CallToolRequest, input NavigateInput) (*mcp.CallToolResult, NavigateOutput, error) {
	if err := models.ValidateCoordinates(input.FromLat, input.FromLng); err != nil {
		return nil, NavigateOutput{}, err
	}
	if err := models.ValidateHeading(input.Heading); err != nil {
		return nil, NavigateOutput{}, err
	}
	if err := models.ValidateHeading(input.Alpha); err != nil {
		return nil, NavigateOutput{}, err
	}
	dest, err := s.catalog.Resolve(input.Destination)
	if err != nil {
		return nil, NavigateOutput{}, err
	}

	from := geo.GeoPoint{Lat: input.FromLat, Lng: input.FromLng}
	heading := geo.HeadingFromOrientation(input.Alpha)
	if heading == nil {
		heading = input.Heading
	}

	marker, err := nav.Compute(from, dest.Point(), heading, s.fieldOfView)
	if err != nil {
		return nil, NavigateOutput{}, fmt.Errorf("cannot place marker: %w", err)
	}
	marker.Label = dest.Name
	s.log.Debug("navigate", "destination", dest.Name, "heading", *heading, "in_view", marker.InView)
	left, top := geo.ScreenPercent(marker.Projection)

	output := NavigateOutput{
		Destination:   placeOutput(dest),
		Heading:       geo.NormalizeDegrees(*heading),
		Marker:        marker,
		Left:          left,
		Top:           top,
		DirectionsURL: geo.DirectionsURL(from, dest.Point()),
	}
	return jsonResult(output), output, nil
}

func (s *Server) registerDirectionsTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "directions_url",
		Description: "Build a walking directions link from the walker's location to a destination.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"from_lat":    coordinateSchema("Walker latitude (-90 to 90)"),
				"from_lng":    coordinateSchema("Walker longitude (-180 to 180)"),
				"destination": destinationSchema,
			},
			"required": []string{"from_lat", "from_lng", "destination"},
		},
	}, s.handleDirections)
}

func (s *Server) handleDirections(_ context.Context, _ *mcp.CallToolRequest, input DirectionsInput) (*mcp.CallToolResult, DirectionsOutput, error) {
	if err := models.ValidateCoordinates(input.FromLat, input.FromLng); err != nil {
		return nil, DirectionsOutput{}, err
	}
	dest, err := s.catalog.Resolve(input.Destination)
	if err != nil {
		return nil, DirectionsOutput{}, err
	}

	from := geo.GeoPoint{Lat: input.FromLat, Lng: input.FromLng}
	output := DirectionsOutput{
		Destination: dest.Name,
		URL:         geo.DirectionsURL(from, dest.Point()),
	}
	return jsonResult(output), output, nil
}

func (s *Server) registerSearchPlacesTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_places",
		Description: "Search the destination catalog by name, or list the places nearest a coordinate.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Case-insensitive name fragment; prefix matches rank first",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum results (default 10)",
				},
				"near_lat": coordinateSchema("Optional latitude to rank by distance"),
				"near_lng": coordinateSchema("Optional longitude to rank by distance"),
			},
		},
	}, s.handleSearchPlaces)
}

func (s *Server) handleSearchPlaces(_ context.Context, _ *mcp.CallToolRequest, input SearchPlacesInput) (*mcp.CallToolResult, ListPlacesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}
	if (input.NearLat == nil) != (input.NearLng == nil) {
		return nil, ListPlacesOutput{}, fmt.Errorf("near_lat and near_lng must be given together")
	}

	var results []PlaceOutput
	if input.NearLat != nil {
		if err := models.ValidateCoordinates(*input.NearLat, *input.NearLng); err != nil {
			return nil, ListPlacesOutput{}, err
		}
		near := geo.GeoPoint{Lat: *input.NearLat, Lng: *input.NearLng}
		for _, r := range s.catalog.SearchNear(input.Query, near, limit) {
			out := placeOutput(r.Place)
			d := r.Distance
			out.DistanceMeters = &d
			results = append(results, out)
		}
	} else {
		for _, p := range s.catalog.Search(input.Query, limit) {
			results = append(results, placeOutput(p))
		}
	}

	if results == nil {
		results = []PlaceOutput{}
	}
	output := ListPlacesOutput{Places: results, Count: len(results)}
	return jsonResult(output), output, nil
}
