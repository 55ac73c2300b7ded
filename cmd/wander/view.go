// ABOUTME: View and project commands
// ABOUTME: Field-of-view test and screen projection for a heading and bearing

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/wander/internal/geo"
	"github.com/harper/wander/internal/models"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view --heading <deg> --bearing <deg>",
	Short: "Check whether a bearing is inside the field of view",
	Long: `Check whether a target bearing is visible to a camera facing a heading.

The field of view comes from --fov or the config (default 50°).

Examples:
  wander view --heading 350 --bearing 10
  wander view --heading 0 --bearing 30 --fov 90`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		heading, _ := cmd.Flags().GetFloat64("heading")
		bearing, _ := cmd.Flags().GetFloat64("bearing")
		if err := models.ValidateAngles(heading, bearing); err != nil {
			return err
		}

		rel := geo.RelativeBearing(bearing, heading)
		out := cmd.OutOrStdout()
		if geo.IsInView(heading, bearing, cfg.FieldOfView) {
			fmt.Fprintln(out, color.GreenString("✓ In view")+
				color.New(color.Faint).Sprintf(" (%+.1f° of %.0f° field of view)", rel, cfg.FieldOfView))
		} else {
			fmt.Fprintln(out, color.YellowString("⚠ Out of view")+
				color.New(color.Faint).Sprintf(" (%+.1f° of %.0f° field of view)", rel, cfg.FieldOfView))
		}
		return nil
	},
}

var projectCmd = &cobra.Command{
	Use:   "project --heading <deg> --bearing <deg> --distance <m>",
	Short: "Project a target onto the screen",
	Long: `Compute where a target appears on screen.

x is the horizontal offset in screen widths from the centre (unclamped),
y is a fixed vertical offset and scale shrinks with distance.

Examples:
  wander project --heading 80 --bearing 90 --distance 50
  wander project --heading 80 --bearing 90 --distance 50 --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		heading, _ := cmd.Flags().GetFloat64("heading")
		bearing, _ := cmd.Flags().GetFloat64("bearing")
		distance, _ := cmd.Flags().GetFloat64("distance")
		if err := models.ValidateAngles(heading, bearing); err != nil {
			return err
		}
		if distance < 0 {
			return fmt.Errorf("distance cannot be negative")
		}

		p := geo.ProjectToScreen(bearing, heading, distance)
		left, top := geo.ScreenPercent(p)

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(out, map[string]float64{
				"x": p.X, "y": p.Y, "scale": p.Scale, "left": left, "top": top,
			})
		}

		fmt.Fprintf(out, "x=%+.3f y=%+.1f scale=%.2f\n", p.X, p.Y, p.Scale)
		fmt.Fprintln(out, color.New(color.Faint).Sprintf("left %.1f%% top %.1f%%", left, top))
		return nil
	},
}

func init() {
	viewCmd.Flags().Float64("heading", 0, "direction the camera faces (degrees)")
	viewCmd.Flags().Float64("bearing", 0, "bearing to the target (degrees)")
	_ = viewCmd.MarkFlagRequired("heading")
	_ = viewCmd.MarkFlagRequired("bearing")

	projectCmd.Flags().Float64("heading", 0, "direction the camera faces (degrees)")
	projectCmd.Flags().Float64("bearing", 0, "bearing to the target (degrees)")
	projectCmd.Flags().Float64("distance", 0, "distance to the target (meters)")
	projectCmd.Flags().Bool("json", false, "output JSON")
	_ = projectCmd.MarkFlagRequired("heading")
	_ = projectCmd.MarkFlagRequired("bearing")
	_ = projectCmd.MarkFlagRequired("distance")

	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(projectCmd)
}
