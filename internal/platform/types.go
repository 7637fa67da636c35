package platform

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// Modifier key names accepted by Inputter implementations.
const (
	ModCmd   = "cmd"
	ModShift = "shift"
	ModCtrl  = "ctrl"
	ModAlt   = "alt"
)

// Target selects which application a command or tool operates on. The
// zero value targets the frontmost application.
type Target struct {
	App string // application name ("" = frontmost)
	PID int    // process id (0 = unset)
}
