package cmd

import (
	"fmt"
	"os"

	"github.com/keyclick/keyclick/internal/config"
	"github.com/keyclick/keyclick/internal/logging"
	"github.com/keyclick/keyclick/internal/output"
	"github.com/keyclick/keyclick/internal/platform"
	"github.com/keyclick/keyclick/internal/version"
	"github.com/spf13/cobra"
)

// Set by the root PersistentPreRunE before any subcommand runs. The
// hidden ax-helper subcommand bypasses this and must not touch them.
var (
	cfg     *config.Config
	logger  logging.Logger
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:   "keyclick",
	Short: "Point and click with the keyboard",
	Long:  "Discovers clickable elements via accessibility APIs, labels them with short key hints, and clicks the one whose hint you type.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Indent JSON output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/keyclick/config.yml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if platform.RequestPermissionsFunc != nil {
			platform.RequestPermissionsFunc()
		}

		// Use the root persistent flags directly to avoid conflicts with
		// subcommand local flags.
		explicit, _ := rootCmd.PersistentFlags().GetString("config")
		cfgPath = config.ResolvePath(explicit)

		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}

		if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
			cfg.Logging.Level = "debug"
		}
		logger = logging.New(cfg.Logging)

		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		if pretty, _ := rootCmd.PersistentFlags().GetBool("pretty"); pretty {
			output.PrettyOutput = true
		}
		return nil
	}
}
