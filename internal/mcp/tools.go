// ABOUTME: MCP geodesy tool definitions and handlers
// ABOUTME: Distance, bearing, field-of-view and screen projection for AI agents

package mcp

import (
	"context"
	"fmt"

	"github.com/harper/wander/internal/geo"
	"github.com/harper/wander/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	s.registerDistanceTool()
	s.registerBearingTool()
	s.registerInViewTool()
	s.registerProjectTool()
	s.registerNavigateTool()
	s.registerDirectionsTool()
	s.registerSearchPlacesTool()
}

func coordinateSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": description,
	}
}

func degreesSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": description + " in degrees clockwise from north",
	}
}

// PairInput is an origin and a target coordinate.
type PairInput struct {
	FromLat float64 `json:"from_lat"`
	FromLng float64 `json:"from_lng"`
	ToLat   float64 `json:"to_lat"`
	ToLng   float64 `json:"to_lng"`
}

func (in PairInput) points() (geo.GeoPoint, geo.GeoPoint, error) {
	if err := models.ValidateCoordinates(in.FromLat, in.FromLng); err != nil {
		return geo.GeoPoint{}, geo.GeoPoint{}, fmt.Errorf("from: %w", err)
	}
	if err := models.ValidateCoordinates(in.ToLat, in.ToLng); err != nil {
		return geo.GeoPoint{}, geo.GeoPoint{}, fmt.Errorf("to: %w", err)
	}
	return geo.GeoPoint{Lat: in.FromLat, Lng: in.FromLng}, geo.GeoPoint{Lat: in.ToLat, Lng: in.ToLng}, nil
}

var pairSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"from_lat": coordinateSchema("Origin latitude (-90 to 90)"),
		"from_lng": coordinateSchema("Origin longitude (-180 to 180)"),
		"to_lat":   coordinateSchema("Target latitude (-90 to 90)"),
		"to_lng":   coordinateSchema("Target longitude (-180 to 180)"),
	},
	"required": []string{"from_lat", "from_lng", "to_lat", "to_lng"},
}

// DistanceOutput defines output for the distance tool.
type DistanceOutput struct {
	Meters    float64 `json:"meters"`
	Formatted string  `json:"formatted"`
}

func (s *Server) registerDistanceTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "distance",
		Description: "Great-circle distance in meters between two coordinates.",
		InputSchema: pairSchema,
	}, s.handleDistance)
}

func (s *Server) handleDistance(_ context.Context, _ *mcp.CallToolRequest, input PairInput) (*mcp.CallToolResult, DistanceOutput, error) {
	from, to, err := input.points()
	if err != nil {
		return nil, DistanceOutput{}, err
	}

	d := geo.DistanceMeters(from, to)
	output := DistanceOutput{Meters: d, Formatted: geo.FormatDistance(d)}
	return jsonResult(output), output, nil
}

// BearingOutput defines output for the bearing tool.
type BearingOutput struct {
	Degrees float64 `json:"degrees"`
}

func (s *Server) registerBearingTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "bearing",
		Description: "Initial compass bearing from the origin to the target, in degrees [0, 360).",
		InputSchema: pairSchema,
	}, s.handleBearing)
}

func (s *Server) handleBearing(_ context.Context, _ *mcp.CallToolRequest, input PairInput) (*mcp.CallToolResult, BearingOutput, error) {
	from, to, err := input.points()
	if err != nil {
		return nil, BearingOutput{}, err
	}

	output := BearingOutput{Degrees: geo.BearingDegrees(from, to)}
	return jsonResult(output), output, nil
}

// InViewInput defines input for the in_view tool.
type InViewInput struct {
	Heading     float64  `json:"heading"`
	Bearing     float64  `json:"bearing"`
	FieldOfView *float64 `json:"field_of_view,omitempty"`
}

// InViewOutput defines output for the in_view tool.
type InViewOutput struct {
	InView          bool    `json:"in_view"`
	RelativeBearing float64 `json:"relative_bearing"`
	FieldOfView     float64 `json:"field_of_view"`
}

func (s *Server) registerInViewTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "in_view",
		Description: "Check whether a bearing falls inside the camera's field of view when facing a heading.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"heading":       degreesSchema("Direction the camera faces"),
				"bearing":       degreesSchema("Bearing to the target"),
				"field_of_view": degreesSchema("Optional horizontal field of view, defaults to the server setting"),
			},
			"required": []string{"heading", "bearing"},
		},
	}, s.handleInView)
}

func (s *Server) handleInView(_ context.Context, _ *mcp.CallToolRequest, input InViewInput) (*mcp.CallToolResult, InViewOutput, error) {
	fov := s.fieldOfView
	if input.FieldOfView != nil {
		fov = *input.FieldOfView
	}
	if fov <= 0 || fov > 360 {
		return nil, InViewOutput{}, fmt.Errorf("field of view must be in (0, 360], got %g", fov)
	}
	if err := models.ValidateAngles(input.Heading, input.Bearing); err != nil {
		return nil, InViewOutput{}, err
	}

	output := InViewOutput{
		InView:          geo.IsInView(input.Heading, input.Bearing, fov),
		RelativeBearing: geo.RelativeBearing(input.Bearing, input.Heading),
		FieldOfView:     fov,
	}
	return jsonResult(output), output, nil
}

// ProjectInput defines input for the project tool.
type ProjectInput struct {
	Heading  float64 `json:"heading"`
	Bearing  float64 `json:"bearing"`
	Distance float64 `json:"distance"`
}

// ProjectOutput defines output for the project tool.
type ProjectOutput struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale"`
	// Left and Top are percentages of the viewport.
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

func (s *Server) registerProjectTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "project",
		Description: "Project a target onto the screen: normalized x, fixed y offset and a distance-based scale.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"heading": degreesSchema("Direction the camera faces"),
				"bearing": degreesSchema("Bearing to the target"),
				"distance": map[string]interface{}{
					"type":        "number",
					"description": "Distance to the target in meters",
				},
			},
			"required": []string{"heading", "bearing", "distance"},
		},
	}, s.handleProject)
}

func (s *Server) handleProject(_ context.Context, _ *mcp.CallToolRequest, input ProjectInput) (*mcp.CallToolResult, ProjectOutput, error) {
	if err := models.ValidateAngles(input.Heading, input.Bearing); err != nil {
		return nil, ProjectOutput{}, err
	}
	if input.Distance < 0 {
		return nil, ProjectOutput{}, fmt.Errorf("distance cannot be negative")
	}

	p := geo.ProjectToScreen(input.Bearing, input.Heading, input.Distance)
	left, top := geo.ScreenPercent(p)
	output := ProjectOutput{X: p.X, Y: p.Y, Scale: p.Scale, Left: left, Top: top}
	return jsonResult(output), output, nil
}
