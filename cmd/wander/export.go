// ABOUTME: Export command for generating GeoJSON from walking tracks
// ABOUTME: Writes the walked path, route steps and destination as a FeatureCollection

package main

import (
	"fmt"
	"time"

	"github.com/harper/wander/internal/geojson"
	"github.com/harper/wander/internal/nav"
	"github.com/harper/wander/internal/report"
	"github.com/harper/wander/internal/sensor"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:     "export <track.yaml>",
	Aliases: []string{"e"},
	Short:   "Export a track as GeoJSON or a markdown report",
	Long: `Export a track file.

GeoJSON turns the walked path into a LineString and the route steps and
destination into Points. Markdown plays the walk through the navigation
loop and tabulates every frame.

Examples:
  wander export walk.yaml
  wander export walk.yaml --output walk.geojson
  wander export walk.yaml --format markdown`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format != "geojson" && format != "markdown" {
			return fmt.Errorf("unsupported format: %s (use 'geojson' or 'markdown')", format)
		}

		track, err := sensor.LoadTrack(args[0])
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")

		if format == "markdown" {
			data, err := report.Markdown(track, nav.Options{
				FieldOfView:    cfg.FieldOfView,
				WaypointRadius: cfg.WaypointRadius,
				Logger:         logger,
			}, time.Now())
			if err != nil {
				return fmt.Errorf("failed to generate markdown: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), output, data, "markdown")
		}

		fc := geojson.TrackFeatureCollection(track)
		if len(fc.Features) == 0 {
			return fmt.Errorf("track has nothing to export")
		}

		jsonBytes, err := geojson.ToJSONIndent(fc)
		if err != nil {
			return fmt.Errorf("failed to generate GeoJSON: %w", err)
		}
		jsonBytes = append(jsonBytes, '\n')

		return writeOutput(cmd.OutOrStdout(), output, jsonBytes, "GeoJSON")
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "geojson", "output format (geojson, markdown)")
	exportCmd.Flags().StringP("output", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(exportCmd)
}
