// ABOUTME: Root Cobra command and global flags
// ABOUTME: Loads config, sets up logging and lazily opens the places catalog

package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harper/wander/internal/config"
	"github.com/harper/wander/internal/logging"
	"github.com/harper/wander/internal/places"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	placesPath  string
	fieldOfView float64
	logLevel    string

	cfg     *config.Config
	logger  *log.Logger
	catalog *places.Catalog
)

var rootCmd = &cobra.Command{
	Use:   "wander",
	Short: "AR walking navigation from the terminal",
	Long: `
██╗    ██╗ █████╗ ███╗   ██╗██████╗ ███████╗██████╗
██║    ██║██╔══██╗████╗  ██║██╔══██╗██╔════╝██╔══██╗
██║ █╗ ██║███████║██╔██╗ ██║██║  ██║█████╗  ██████╔╝
██║███╗██║██╔══██║██║╚██╗██║██║  ██║██╔══╝  ██╔══██╗
╚███╔███╔╝██║  ██║██║ ╚████║██████╔╝███████╗██║  ██║
 ╚══╝╚══╝ ╚═╝  ╚═╝╚═╝  ╚═══╝╚═════╝ ╚══════╝╚═╝  ╚═╝

     Point your phone, see where you're going

Examples:
  wander distance "Cloud Gate" "Willis Tower"
  wander navigate "Willis Tower" --from 41.8827,-87.6233 --alpha 250
  wander simulate "Navy Pier" --from 41.8827,-87.6233 > walk.yaml
  wander replay walk.yaml --strip
  wander places wi --near 41.8827,-87.6233`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.LoadFile(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		flags := cmd.Flags()
		if flags.Changed("places") {
			cfg.PlacesFile = placesPath
		}
		if flags.Changed("fov") {
			cfg.FieldOfView = fieldOfView
		}
		if flags.Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
		if err != nil {
			return err
		}
		log.SetDefault(logger)

		catalog = nil
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/wander/config.json)")
	flags.StringVar(&placesPath, "places", "", "places catalog YAML (overrides config)")
	flags.Float64Var(&fieldOfView, "fov", 50, "camera field of view in degrees (overrides config)")
	flags.StringVar(&logLevel, "log-level", "info", "log level: "+config.LogLevels+" (overrides config)")
}

// openCatalog loads the configured places catalog on first use.
func openCatalog() (*places.Catalog, error) {
	if catalog != nil {
		return catalog, nil
	}
	c, err := cfg.OpenCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load places: %w", err)
	}
	logger.Debug("loaded places", "file", cfg.GetPlacesFile(), "count", c.Len())
	catalog = c
	return c, nil
}
