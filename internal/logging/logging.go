// ABOUTME: Structured logger setup for the CLI and MCP server
// ABOUTME: Builds a leveled charm logger for the given writer

package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a logger at the given level ("debug", "info", "warn", "error").
// An empty level means info.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		var err error
		lvl, err = log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "wander",
		ReportTimestamp: lvl == log.DebugLevel,
	}), nil
}
