// ABOUTME: MCP server initialization and configuration
// ABOUTME: Exposes geodesy, projection and navigation tools to AI agents

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harper/wander/internal/geo"
	"github.com/harper/wander/internal/places"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps an MCP server around the destination catalog.
type Server struct {
	mcp         *mcp.Server
	catalog     *places.Catalog
	fieldOfView float64
	log         *log.Logger
}

// NewServer creates MCP server with all capabilities.
// A zero field of view uses geo.DefaultFieldOfView.
func NewServer(catalog *places.Catalog, fieldOfView float64) (*Server, error) {
	if catalog == nil {
		return nil, fmt.Errorf("places catalog is required")
	}
	if fieldOfView == 0 {
		fieldOfView = geo.DefaultFieldOfView
	}
	if fieldOfView < 0 || fieldOfView > 360 {
		return nil, fmt.Errorf("field of view must be between 0 and 360 degrees")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "wander",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcp:         mcpServer,
		catalog:     catalog,
		fieldOfView: fieldOfView,
		log:         log.Default(),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Debug("serving mcp over stdio", "places", s.catalog.Len(), "fov", s.fieldOfView)
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// jsonResult wraps a tool output as indented JSON text content.
func jsonResult(v interface{}) *mcp.CallToolResult {
	jsonBytes, _ := json.MarshalIndent(v, "", "  ") //nolint:errchkjson // outputs are plain structs
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}
}
