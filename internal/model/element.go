package model

// Origin identifies which discovery path produced an element.
type Origin string

const (
	// OriginNative marks elements read from the accessibility tree.
	OriginNative Origin = "native"
	// OriginWeb marks elements reported by in-page script evaluation.
	OriginWeb Origin = "web"
)

// ScreenElement is one clickable region in screen coordinates.
// Immutable once produced; every activation builds a fresh set.
type ScreenElement struct {
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"w" json:"w"`
	Height float64 `yaml:"h" json:"h"`
	Role   string  `yaml:"r" json:"r"`                     // Abbreviated role code
	Label  string  `yaml:"t,omitempty" json:"t,omitempty"` // Visible label / title
	Origin Origin  `yaml:"o,omitempty" json:"o,omitempty"`
}

// Center returns the element's center point in integer screen coordinates,
// the point a dispatched click lands on.
func (e ScreenElement) Center() (x, y int) {
	return int(e.X + e.Width/2), int(e.Y + e.Height/2)
}

// RawElement is the wire shape the walker helper prints: one clickable
// region with its raw accessibility role and resolved title.
type RawElement struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Role   string  `json:"role"`
	Title  string  `json:"title"`
}

// FromRaw converts a helper wire element into a ScreenElement with a
// normalized role code and native origin.
func FromRaw(r RawElement) ScreenElement {
	return ScreenElement{
		X:      r.X,
		Y:      r.Y,
		Width:  r.Width,
		Height: r.Height,
		Role:   MapRole(r.Role),
		Label:  r.Title,
		Origin: OriginNative,
	}
}

// DiscoveryResult is the outcome of one discovery pass. IsModal marks that
// the elements came from a transient surface (open menu, sheet, dialog)
// that takes priority over the main window; the browser supplement is
// suppressed for modal results.
type DiscoveryResult struct {
	Elements []ScreenElement `yaml:"elements" json:"elements"`
	IsModal  bool            `yaml:"is_modal,omitempty" json:"is_modal,omitempty"`
}

// HintedElement pairs an element with its assigned hint label. The ID is
// stable for the session's lifetime and is the only handle used to select
// the element afterwards; nothing is ever re-identified by position.
type HintedElement struct {
	ID      int           `yaml:"i" json:"i"`
	Hint    string        `yaml:"hint" json:"hint"`
	Element ScreenElement `yaml:"el" json:"el"`
}
