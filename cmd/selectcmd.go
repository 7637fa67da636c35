package cmd

import (
	"fmt"

	"github.com/keyclick/keyclick/internal/dispatch"
	"github.com/keyclick/keyclick/internal/hints"
	"github.com/keyclick/keyclick/internal/output"
	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select INPUT",
	Short: "Select an element by typing its hint",
	Long: `Run one discovery pass, assign hint labels, and feed INPUT through the
matcher as if it had been typed. A full hint clicks the element's center
point. Prefixing INPUT with an action key (r, c, d, n) changes what the
click does.

Examples:
  keyclick select a
  keyclick select gh --app Safari
  keyclick select rj            (right-click the element hinted J)
  keyclick select f --action double`,
	Args: cobra.ExactArgs(1),
	RunE: runSelect,
}

func init() {
	rootCmd.AddCommand(selectCmd)
	addTargetFlags(selectCmd)
	selectCmd.Flags().String("action", "click", "Click action: click, right, double, cmd")
}

func runSelect(cmd *cobra.Command, args []string) error {
	input := args[0]
	if input == "" {
		return fmt.Errorf("input must not be empty")
	}

	actionName, _ := cmd.Flags().GetString("action")
	action, err := hints.ParseAction(actionName)
	if err != nil {
		return err
	}

	provider, orch, err := newPipeline()
	if err != nil {
		return err
	}
	if provider.Inputter == nil {
		return fmt.Errorf("input dispatch not available on this platform")
	}

	act, err := orch.Discover(cmd.Context(), targetFromFlags(cmd))
	if err != nil {
		return err
	}

	session := hints.NewSession()
	if err := session.Activate(hints.Label(act.Elements, cfg.HintChars)); err != nil {
		return err
	}
	session.SetAction(action)

	ev := hints.Feed(session, input)

	result := output.SelectResult{
		App:   act.App.Name,
		PID:   act.App.PID,
		Input: input,
	}

	switch ev.Kind {
	case hints.EventMatch:
		dispatcher := dispatch.NewDispatcher(provider.Inputter, logger)
		if err := dispatcher.Click(ev.Element.Element, ev.Action); err != nil {
			return err
		}
		x, y := ev.Element.Element.Center()
		result.State = output.StateClicked
		result.Action = ev.Action.String()
		result.Element = ev.Element
		result.X = x
		result.Y = y
	case hints.EventPartial, hints.EventWrongSecondKey, hints.EventActionChanged:
		result.State = output.StatePartial
		result.Action = session.PendingAction().String()
		result.Remaining = ev.Remaining
	default:
		result.State = output.StateNoMatch
	}

	return output.Print(result)
}
