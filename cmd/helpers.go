package cmd

import (
	"github.com/keyclick/keyclick/internal/config"
	"github.com/keyclick/keyclick/internal/discovery"
	"github.com/keyclick/keyclick/internal/platform"
	"github.com/spf13/cobra"
)

// addTargetFlags registers the app-targeting flags shared by every
// command that runs a discovery pass.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("app", "", "Target application by name (default: frontmost)")
	cmd.Flags().Int("pid", 0, "Target application by process id")
}

// targetFromFlags reads the shared targeting flags back into a Target.
func targetFromFlags(cmd *cobra.Command) platform.Target {
	app, _ := cmd.Flags().GetString("app")
	pid, _ := cmd.Flags().GetInt("pid")
	return platform.Target{App: app, PID: pid}
}

// discoveryOptions maps the loaded config onto pipeline options.
func discoveryOptions(c *config.Config) discovery.Options {
	return discovery.Options{
		Settle:        c.SettleDelay(),
		MaxDepth:      c.MaxDepth,
		MaxElements:   c.MaxElements,
		HelperTimeout: c.HelperTimeout(),
		HelperPath:    c.HelperPath,
		Supplement:    c.Browser.Supplement,
		CacheTTL:      c.CacheTTL(),
	}
}

// newPipeline builds the platform provider and the discovery
// orchestrator every element-facing command starts from.
func newPipeline() (*platform.Provider, *discovery.Orchestrator, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, nil, err
	}
	return provider, discovery.NewOrchestrator(provider, discoveryOptions(cfg), logger), nil
}
