// ABOUTME: Replay command
// ABOUTME: Plays a recorded or simulated walk through the navigation loop

package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/wander/internal/geo"
	"github.com/harper/wander/internal/geojson"
	"github.com/harper/wander/internal/nav"
	"github.com/harper/wander/internal/sensor"
	"github.com/harper/wander/internal/ui"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:     "replay <track.yaml>",
	Aliases: []string{"r"},
	Short:   "Replay a walk and render every AR frame",
	Long: `Replay a track file through the navigation loop.

Each reading updates your location or heading and redraws the markers for
the destination and the next route step. --speed 0 plays without waiting.

Examples:
  wander replay walk.yaml
  wander replay walk.yaml --speed 10 --strip
  wander replay walk.yaml --speed 0 --json > frames.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		track, err := sensor.LoadTrack(args[0])
		if err != nil {
			return err
		}
		dest, err := track.DestinationPlace()
		if err != nil {
			return err
		}

		speed := cfg.ReplaySpeed
		if cmd.Flags().Changed("speed") {
			speed, _ = cmd.Flags().GetFloat64("speed")
		}
		if speed < 0 {
			return fmt.Errorf("speed cannot be negative")
		}

		session, err := nav.NewSession(dest, track.Waypoints(), nav.Options{
			FieldOfView:    cfg.FieldOfView,
			WaypointRadius: cfg.WaypointRadius,
			Logger:         logger,
		})
		if err != nil {
			return err
		}

		source := sensor.NewReplay(track, speed)
		source.Logger = logger

		ctx, cancel := signalContext(commandContext(cmd))
		defer cancel()

		readings, err := source.Readings(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		asJSON, _ := cmd.Flags().GetBool("json")
		asGeoJSON, _ := cmd.Flags().GetBool("geojson")
		strip, _ := cmd.Flags().GetBool("strip")
		width, _ := cmd.Flags().GetInt("width")
		enc := json.NewEncoder(out)

		render := func(f nav.Frame) error {
			switch {
			case asJSON:
				return enc.Encode(f)
			case asGeoJSON:
				data, err := geojson.ToJSON(geojson.FrameFeatureCollection(f, session.Route()))
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			case strip:
				d := ""
				if m, ok := f.Marker(nav.KeyDestination); ok {
					d = geo.FormatDistance(m.Distance)
				}
				_, err := fmt.Fprintf(out, "%s %s\n", ui.FormatStrip(f, width), d)
				return err
			default:
				_, err := fmt.Fprintln(out, ui.FormatFrame(f))
				return err
			}
		}

		logger.Debug("replaying track", "name", track.Name, "readings", len(track.Readings), "speed", speed)
		stats, err := session.Run(ctx, readings, render)
		if err != nil {
			return err
		}

		if !asJSON && !asGeoJSON {
			fmt.Fprintln(out, color.GreenString("✓ Replayed %d readings, %d frames", stats.Readings, stats.Frames))
			if stats.Skipped > 0 {
				fmt.Fprintln(out, color.New(color.Faint).Sprintf("  %d readings skipped waiting for location or heading", stats.Skipped))
			}
			if remaining, ok := session.Remaining(); ok {
				if session.Arrived() {
					fmt.Fprintln(out, color.GreenString("✓ Arrived at %s", dest.Name))
				} else {
					fmt.Fprintf(out, "  %s to go to %s\n", geo.FormatDistance(remaining), dest.Name)
				}
			}
		}
		return nil
	},
}

func init() {
	replayCmd.Flags().Float64("speed", 1, "playback speed multiplier, 0 for no waiting (overrides config)")
	replayCmd.Flags().Bool("json", false, "output one JSON frame per line")
	replayCmd.Flags().Bool("geojson", false, "output one GeoJSON FeatureCollection per frame per line")
	replayCmd.Flags().Bool("strip", false, "draw a one-line AR strip per frame")
	replayCmd.Flags().Int("width", 41, "width of the AR strip")

	rootCmd.AddCommand(replayCmd)
}
