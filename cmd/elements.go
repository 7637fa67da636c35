package cmd

import (
	"time"

	"github.com/keyclick/keyclick/internal/output"
	"github.com/spf13/cobra"
)

var elementsCmd = &cobra.Command{
	Use:   "elements",
	Short: "Discover clickable elements",
	Long: `Run one discovery pass over the target application and print every
clickable element found: native accessibility elements first, then page
content when the target is a scriptable browser.`,
	RunE: runElements,
}

func init() {
	rootCmd.AddCommand(elementsCmd)
	addTargetFlags(elementsCmd)
	elementsCmd.Flags().Bool("fresh", false, "Drop any cached result and walk the tree again")
}

func runElements(cmd *cobra.Command, args []string) error {
	_, orch, err := newPipeline()
	if err != nil {
		return err
	}

	if fresh, _ := cmd.Flags().GetBool("fresh"); fresh {
		orch.InvalidateAll()
	}

	act, err := orch.Discover(cmd.Context(), targetFromFlags(cmd))
	if err != nil {
		return err
	}

	return output.Print(output.ElementsResult{
		App:        act.App.Name,
		BundleID:   act.App.BundleID,
		PID:        act.App.PID,
		Activation: act.ID,
		Cached:     act.FromCache,
		Modal:      act.IsModal,
		TS:         time.Now().Unix(),
		Elements:   act.Elements,
	})
}
