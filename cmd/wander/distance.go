// ABOUTME: Distance and bearing commands
// ABOUTME: Great-circle distance and initial compass bearing between two points

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/wander/internal/geo"
	"github.com/harper/wander/internal/ui"
	"github.com/spf13/cobra"
)

var distanceCmd = &cobra.Command{
	Use:     "distance <from> <to>",
	Aliases: []string{"d"},
	Short:   "Great-circle distance between two points",
	Long: `Print the great-circle distance between two points.

Points are "lat,lng" pairs or names from the places catalog.

Examples:
  wander distance 41.8827,-87.6233 41.8789,-87.6359
  wander distance "Cloud Gate" "Willis Tower"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := resolvePair(args)
		if err != nil {
			return err
		}

		d := geo.DistanceMeters(from, to)
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
			color.CyanString(geo.FormatDistance(d)),
			color.New(color.Faint).Sprintf("(%.1f m)", d))
		return nil
	},
}

var bearingCmd = &cobra.Command{
	Use:     "bearing <from> <to>",
	Aliases: []string{"b"},
	Short:   "Compass bearing from one point to another",
	Long: `Print the initial compass bearing from the first point to the second,
in degrees clockwise from north.

Examples:
  wander bearing 0,0 0,1
  wander bearing "Cloud Gate" "Willis Tower"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := resolvePair(args)
		if err != nil {
			return err
		}

		b := geo.BearingDegrees(from, to)
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
			color.CyanString("%.1f°", b),
			color.New(color.Faint).Sprint(ui.CompassPoint(b)))
		return nil
	},
}

func resolvePair(args []string) (geo.GeoPoint, geo.GeoPoint, error) {
	from, err := resolvePoint(args[0])
	if err != nil {
		return geo.GeoPoint{}, geo.GeoPoint{}, fmt.Errorf("from: %w", err)
	}
	to, err := resolvePoint(args[1])
	if err != nil {
		return geo.GeoPoint{}, geo.GeoPoint{}, fmt.Errorf("to: %w", err)
	}
	return from, to, nil
}

func init() {
	rootCmd.AddCommand(distanceCmd)
	rootCmd.AddCommand(bearingCmd)
}
