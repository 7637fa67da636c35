// Package dispatch turns a matched element into synthetic mouse input.
// Everything is position-based: the click lands on the element's center
// point, never on an accessibility action.
package dispatch

import (
	"fmt"

	"github.com/keyclick/keyclick/internal/hints"
	"github.com/keyclick/keyclick/internal/logging"
	"github.com/keyclick/keyclick/internal/model"
	"github.com/keyclick/keyclick/internal/platform"
)

// Dispatcher posts clicks through the platform inputter.
type Dispatcher struct {
	inputter platform.Inputter
	log      logging.Logger
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(inputter platform.Inputter, log logging.Logger) *Dispatcher {
	return &Dispatcher{inputter: inputter, log: log}
}

// Click performs the given action on the element's center point.
func (d *Dispatcher) Click(el model.ScreenElement, action hints.Action) error {
	x, y := el.Center()
	button, count, modifiers := clickParams(action)

	d.log.Debug("dispatching click",
		logging.Int("x", x), logging.Int("y", y),
		logging.String("action", action.String()),
		logging.String("role", el.Role))

	if err := d.inputter.Click(x, y, button, count, modifiers); err != nil {
		return fmt.Errorf("dispatch %s at (%d, %d): %w", action, x, y, err)
	}
	return nil
}

// clickParams maps an action onto button, click count and modifiers.
func clickParams(action hints.Action) (platform.MouseButton, int, []string) {
	switch action {
	case hints.ActionRight:
		return platform.MouseRight, 1, nil
	case hints.ActionDouble:
		return platform.MouseLeft, 2, nil
	case hints.ActionCommand:
		return platform.MouseLeft, 1, []string{platform.ModCmd}
	default:
		return platform.MouseLeft, 1, nil
	}
}
