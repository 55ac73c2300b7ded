// ABOUTME: Simulate command
// ABOUTME: Writes a synthetic straight-line walking track toward a destination

package main

import (
	"github.com/harper/wander/internal/sensor"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <destination> --from <lat,lng>",
	Short: "Generate a synthetic walking track",
	Long: `Generate a YAML track walking in a straight line to a destination.

Every reading carries a location, the walking course and a compass alpha
that sways left and right of it. Feed the result to 'wander replay'.

Examples:
  wander simulate "Navy Pier" --from 41.8827,-87.6233 > walk.yaml
  wander simulate 41.8917,-87.6086 --from "Cloud Gate" --step 20 --output walk.yaml`,
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

		opts := sensor.DefaultSimulateOptions()
		if cmd.Flags().Changed("step") {
			opts.StepMeters, _ = cmd.Flags().GetFloat64("step")
		}
		if cmd.Flags().Changed("interval") {
			opts.Interval, _ = cmd.Flags().GetDuration("interval")
		}
		if cmd.Flags().Changed("sway") {
			opts.Sway, _ = cmd.Flags().GetFloat64("sway")
		}

		track, err := sensor.Simulate(from, dest, opts)
		if err != nil {
			return err
		}
		data, err := track.Marshal()
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		return writeOutput(cmd.OutOrStdout(), output, data, "track")
	},
}

func init() {
	defaults := sensor.DefaultSimulateOptions()
	simulateCmd.Flags().String("from", "", "start location as lat,lng or a place name")
	simulateCmd.Flags().Float64("step", defaults.StepMeters, "meters walked between readings")
	simulateCmd.Flags().Duration("interval", defaults.Interval, "time between readings")
	simulateCmd.Flags().Float64("sway", defaults.Sway, "degrees the phone swings either side of the course")
	simulateCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	_ = simulateCmd.MarkFlagRequired("from")

	rootCmd.AddCommand(simulateCmd)
}
