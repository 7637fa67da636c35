package hints

import "fmt"

// Action is the mouse action performed on the matched element.
type Action int

const (
	// ActionClick is a plain left click.
	ActionClick Action = iota
	// ActionRight is a right click.
	ActionRight
	// ActionDouble is a double left click.
	ActionDouble
	// ActionCommand is a left click with the command modifier held.
	ActionCommand
)

// String returns the flag-style name of the action.
func (a Action) String() string {
	switch a {
	case ActionRight:
		return "right"
	case ActionDouble:
		return "double"
	case ActionCommand:
		return "cmd"
	default:
		return "click"
	}
}

// ParseAction parses a flag-style action name.
func ParseAction(s string) (Action, error) {
	switch s {
	case "", "click", "left":
		return ActionClick, nil
	case "right":
		return ActionRight, nil
	case "double":
		return ActionDouble, nil
	case "cmd", "command":
		return ActionCommand, nil
	default:
		return ActionClick, fmt.Errorf("unknown action %q (expected click, right, double, or cmd)", s)
	}
}

// actionKeys are the unmodified keys that switch the pending action while
// hints are showing. The default configured alphabet excludes them.
var actionKeys = map[rune]Action{
	'r': ActionRight,
	'c': ActionCommand,
	'd': ActionDouble,
	'n': ActionClick,
}
