// ABOUTME: MCP resource definitions
// ABOUTME: Provides a read-only view of the destination catalog for AI agents

package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PlacesURI is the catalog resource.
const PlacesURI = "wander://places"

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		Name:        PlacesURI,
		Description: "Every destination in the places catalog",
		URI:         PlacesURI,
		MIMEType:    "application/json",
	}, s.handlePlacesResource)
}

func (s *Server) handlePlacesResource(_ context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	all := s.catalog.All()
	outputs := make([]PlaceOutput, len(all))
	for i, p := range all {
		outputs[i] = placeOutput(p)
	}

	output := ListPlacesOutput{
		Places: outputs,
		Count:  len(outputs),
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      PlacesURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		},
	}, nil
}
