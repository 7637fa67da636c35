package cmd

import (
	"time"

	"github.com/keyclick/keyclick/internal/hints"
	"github.com/keyclick/keyclick/internal/output"
	"github.com/spf13/cobra"
)

var hintsCmd = &cobra.Command{
	Use:   "hints",
	Short: "Discover elements and assign hint labels",
	Long: `Run one discovery pass and print the elements with their hint labels
assigned, in the same order a selection pass would use. Pipe the output
to see which keys select which element.`,
	RunE: runHints,
}

func init() {
	rootCmd.AddCommand(hintsCmd)
	addTargetFlags(hintsCmd)
	hintsCmd.Flags().Bool("fresh", false, "Drop any cached result and walk the tree again")
}

func runHints(cmd *cobra.Command, args []string) error {
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

	return output.Print(output.HintsResult{
		App:        act.App.Name,
		BundleID:   act.App.BundleID,
		PID:        act.App.PID,
		Activation: act.ID,
		Cached:     act.FromCache,
		Modal:      act.IsModal,
		TS:         time.Now().Unix(),
		Hints:      hints.Label(act.Elements, cfg.HintChars),
	})
}
