// ABOUTME: Places and directions commands
// ABOUTME: Search the destination catalog and build walking directions links

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/wander/internal/geo"
	"github.com/harper/wander/internal/ui"
	"github.com/spf13/cobra"
)

var placesCmd = &cobra.Command{
	Use:     "places [query]",
	Aliases: []string{"p", "ls"},
	Short:   "Search the destination catalog",
	Long: `List catalog places whose name contains the query, prefix matches first.

With --near, results are ordered by distance from that point instead.

Examples:
  wander places
  wander places wi
  wander places --near 41.8827,-87.6233 --limit 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}

		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		limit, _ := cmd.Flags().GetInt("limit")
		near, _ := cmd.Flags().GetString("near")
		out := cmd.OutOrStdout()

		count := 0
		if near != "" {
			from, err := resolvePoint(near)
			if err != nil {
				return fmt.Errorf("near: %w", err)
			}
			for _, r := range c.SearchNear(query, from, limit) {
				d := r.Distance
				fmt.Fprintln(out, ui.FormatPlace(r.Place, &d))
				count++
			}
		} else {
			for _, p := range c.Search(query, limit) {
				fmt.Fprintln(out, ui.FormatPlace(p, nil))
				count++
			}
		}

		if count == 0 {
			if c.Len() == 0 {
				fmt.Fprintln(out, color.New(color.Faint).Sprintf("No places yet. Add some to %s", cfg.GetPlacesFile()))
			} else {
				fmt.Fprintln(out, color.New(color.Faint).Sprint("No places found"))
			}
		}
		return nil
	},
}

var directionsCmd = &cobra.Command{
	Use:   "directions <destination> --from <lat,lng>",
	Short: "Print a walking directions link",
	Long: `Print a Google Maps walking directions link from your location to a destination.

Examples:
  wander directions "Willis Tower" --from 41.8827,-87.6233`,
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

		fmt.Fprintln(cmd.OutOrStdout(), geo.DirectionsURL(from, dest.Point()))
		return nil
	},
}

func init() {
	placesCmd.Flags().String("near", "", "order by distance from lat,lng or a place name")
	placesCmd.Flags().IntP("limit", "n", 10, "maximum results (0 for all)")

	directionsCmd.Flags().String("from", "", "your location as lat,lng or a place name")
	_ = directionsCmd.MarkFlagRequired("from")

	rootCmd.AddCommand(placesCmd)
	rootCmd.AddCommand(directionsCmd)
}
