package cmd

import (
	"fmt"
	"os"

	"github.com/keyclick/keyclick/internal/discovery"
	"github.com/keyclick/keyclick/internal/platform"
	"github.com/keyclick/keyclick/internal/walker"
	"github.com/spf13/cobra"
)

// axHelperCmd is the hidden entry point the discovery pipeline re-executes
// the binary with. The contract is one JSON line on stdout on success and
// one {"error": ...} line on stderr on failure, so cobra's own error and
// usage printing are silenced and the root's PersistentPreRunE is
// bypassed; the parent process owns configuration and permission
// prompting.
var axHelperCmd = &cobra.Command{
	Use:                discovery.HelperCommand + " [pid] [settle_ms] [max_depth] [max_elements]",
	Short:              "Run one accessibility tree walk (internal)",
	Hidden:             true,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: runAXHelper,
}

func init() {
	rootCmd.AddCommand(axHelperCmd)
}

func runAXHelper(cmd *cobra.Command, args []string) error {
	err := axHelperMain(args)
	if err != nil {
		walker.WriteError(os.Stderr, err)
	}
	return err
}

// axHelperMain performs the walk. Split from runAXHelper so every failure
// path funnels through one WriteError call.
func axHelperMain(argv []string) error {
	wargs, err := walker.ParseArgs(argv)
	if err != nil {
		return err
	}

	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	if provider.TreeSource == nil {
		return fmt.Errorf("accessibility tree not available on this platform")
	}

	pid := wargs.PID
	if pid == 0 {
		if provider.Apps == nil {
			return fmt.Errorf("frontmost app lookup not available on this platform")
		}
		app, err := provider.Apps.Frontmost()
		if err != nil {
			return err
		}
		pid = app.PID
	}

	tree, err := provider.TreeSource.Tree(pid)
	if err != nil {
		return err
	}

	return walker.Run(os.Stdout, tree, wargs.Settle, wargs.Limits)
}
