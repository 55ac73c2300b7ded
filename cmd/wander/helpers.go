// ABOUTME: Shared helpers for CLI commands
// ABOUTME: Point and destination resolution, output files and signal-aware contexts

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/harper/wander/internal/geo"
	"github.com/harper/wander/internal/models"
	"github.com/harper/wander/internal/places"
	"github.com/spf13/cobra"
)

// resolvePoint accepts a "lat,lng" pair or a catalog place name.
func resolvePoint(arg string) (geo.GeoPoint, error) {
	place, err := resolvePlace(arg)
	if err != nil {
		return geo.GeoPoint{}, err
	}
	return place.Point(), nil
}

// resolvePlace accepts a catalog place name or a "lat,lng" pair.
// When neither matches, a malformed pair reports why it failed to parse.
func resolvePlace(arg string) (*models.Place, error) {
	c, err := openCatalog()
	if err != nil {
		return nil, err
	}
	place, err := c.Resolve(arg)
	if errors.Is(err, places.ErrNotFound) && strings.Contains(arg, ",") {
		if _, perr := models.ParsePoint(arg); perr != nil {
			return nil, perr
		}
	}
	return place, err
}

// fromFlag reads and validates the --from flag.
func fromFlag(cmd *cobra.Command) (geo.GeoPoint, error) {
	from, _ := cmd.Flags().GetString("from")
	if from == "" {
		return geo.GeoPoint{}, fmt.Errorf("--from lat,lng is required")
	}
	return resolvePoint(from)
}

// optionalFloat returns a flag's value only when the user set it.
func optionalFloat(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte, what string) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // 0644 is intentional for data export files
		return fmt.Errorf("failed to write file: %w", err)
	}
	logger.Info("wrote "+what, "path", path, "bytes", len(data))
	return nil
}

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// commandContext returns the command's context, or Background when run outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
