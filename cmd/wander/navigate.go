// ABOUTME: Navigate command
// ABOUTME: Computes one AR frame for a destination from a location and heading

package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/wander/internal/geo"
	"github.com/harper/wander/internal/geojson"
	"github.com/harper/wander/internal/models"
	"github.com/harper/wander/internal/nav"
	"github.com/harper/wander/internal/sensor"
	"github.com/harper/wander/internal/ui"
	"github.com/spf13/cobra"
)

var navigateCmd = &cobra.Command{
	Use:     "navigate <destination> --from <lat,lng>",
	Aliases: []string{"nav", "n"},
	Short:   "Show where a destination appears on screen",
	Long: `Compute the AR marker for a destination from your location and heading.

--alpha is the compass reading from device orientation and wins over
--heading, the course reported by the location sensor.

Examples:
  wander navigate "Willis Tower" --from 41.8827,-87.6233 --heading 250
  wander navigate "Willis Tower" --from 41.8827,-87.6233 --alpha 250 --json
  wander navigate 41.8789,-87.6359 --from 41.8827,-87.6233 --alpha 250
  wander navigate "Willis Tower" --from 41.8827,-87.6233 --alpha 250 --geojson > frame.geojson`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest, err := resolvePlace(args[0])
		if err != nil {
			return err
		}
		from, err := fromFlag(cmd)
		if err != nil {
			return err
		}

		course := optionalFloat(cmd, "heading")
		alpha := optionalFloat(cmd, "alpha")
		if err := models.ValidateHeading(course); err != nil {
			return err
		}
		if err := models.ValidateHeading(alpha); err != nil {
			return err
		}

		session, err := nav.NewSession(dest, nil, nav.Options{
			FieldOfView:    cfg.FieldOfView,
			WaypointRadius: cfg.WaypointRadius,
			Logger:         logger,
		})
		if err != nil {
			return err
		}

		r := models.NewReading()
		r.Location = &from
		r.Course = course
		r.Alpha = alpha
		ctx := commandContext(cmd)
		source := &sensor.Static{Reading: *r}
		readings, err := source.Readings(ctx)
		if err != nil {
			return err
		}

		var frame nav.Frame
		stats, err := session.Run(ctx, readings, func(f nav.Frame) error {
			frame = f
			return nil
		})
		if err != nil {
			return err
		}
		if stats.Frames == 0 {
			if _, err := session.Frame(); errors.Is(err, nav.ErrNoHeading) {
				return fmt.Errorf("%w: pass --heading or --alpha", err)
			} else if err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(out, frame)
		}
		if asGeoJSON, _ := cmd.Flags().GetBool("geojson"); asGeoJSON {
			data, err := geojson.ToJSONIndent(geojson.FrameFeatureCollection(frame, session.Route()))
			if err != nil {
				return fmt.Errorf("failed to generate GeoJSON: %w", err)
			}
			_, err = fmt.Fprintln(out, string(data))
			return err
		}

		width, _ := cmd.Flags().GetInt("width")
		fmt.Fprintln(out, ui.FormatFrame(frame))
		fmt.Fprintln(out, ui.FormatStrip(frame, width))
		if len(frame.Visible()) == 0 {
			turn := "right"
			if m, ok := frame.Marker(nav.KeyDestination); ok && m.Projection.X < 0 {
				turn = "left"
			}
			fmt.Fprintln(out, color.YellowString("⚠ %s is out of view, turn %s", dest.Name, turn))
		}
		fmt.Fprintln(out, color.New(color.Faint).Sprint(geo.DirectionsURL(from, dest.Point())))
		return nil
	},
}

func init() {
	navigateCmd.Flags().String("from", "", "your location as lat,lng or a place name")
	navigateCmd.Flags().Float64("heading", 0, "course from the location sensor (degrees)")
	navigateCmd.Flags().Float64("alpha", 0, "compass alpha from device orientation (degrees)")
	navigateCmd.Flags().Bool("json", false, "output the frame as JSON")
	navigateCmd.Flags().Bool("geojson", false, "output the frame as a GeoJSON FeatureCollection")
	navigateCmd.Flags().Int("width", 41, "width of the AR strip")
	_ = navigateCmd.MarkFlagRequired("from")

	rootCmd.AddCommand(navigateCmd)
}
