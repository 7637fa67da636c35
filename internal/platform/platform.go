package platform

import (
	"context"
	"image"

	"github.com/keyclick/keyclick/internal/model"
	"github.com/keyclick/keyclick/internal/walker"
)

// TreeSource opens accessibility trees from the OS accessibility layer.
type TreeSource interface {
	// Tree returns an accessibility tree bound to the given process.
	Tree(pid int) (walker.Tree, error)
}

// Inputter synthesizes mouse input.
type Inputter interface {
	// Click presses and releases a mouse button at screen coordinates.
	// Modifier names ("cmd", "shift", "ctrl", "alt") are held for the
	// duration of the click.
	Click(x, y int, button MouseButton, count int, modifiers []string) error

	// MoveMouse warps the pointer to screen coordinates.
	MoveMouse(x, y int) error
}

// Apps reports running applications.
type Apps interface {
	// Frontmost returns the currently focused application.
	Frontmost() (model.AppInfo, error)

	// Find locates a running application by name, case-insensitively.
	Find(name string) (model.AppInfo, error)

	// ByPID resolves a running application from its process id.
	ByPID(pid int) (model.AppInfo, error)
}

// ScriptRunner executes AppleScript source through the OS scripting
// bridge.
type ScriptRunner interface {
	// RunScript runs the source and returns its textual result.
	RunScript(ctx context.Context, source string) (string, error)
}

// Screenshotter captures screen content.
type Screenshotter interface {
	// CaptureDisplay captures the main display into an RGBA image.
	CaptureDisplay() (*image.RGBA, error)

	// DisplaySize reports the main display's size in points. On Retina
	// displays this differs from the capture's pixel size.
	DisplaySize() (w, h float64, err error)
}
