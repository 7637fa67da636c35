// Package walker traverses macOS accessibility trees and extracts the
// on-screen elements a user could click. It runs inside a short-lived
// helper process so that a misbehaving accessibility API takes down the
// helper rather than the caller.
package walker

// Accessibility attribute names understood by Node implementations.
const (
	AttrRole          = "AXRole"
	AttrTitle         = "AXTitle"
	AttrDescription   = "AXDescription"
	AttrValue         = "AXValue"
	AttrLabel         = "AXLabel"
	AttrHelp          = "AXHelp"
	AttrParent        = "AXParent"
	AttrChildren      = "AXChildren"
	AttrWindows       = "AXWindows"
	AttrFocusedWindow = "AXFocusedWindow"
	AttrSheets        = "AXSheets"
	AttrDialogs       = "AXDialogs"
	AttrExtrasMenuBar = "AXExtrasMenuBar"
)

// Node is a single element in an accessibility tree. Implementations wrap
// live AXUIElement handles, so every accessor can fail.
type Node interface {
	// Attr returns a string-valued attribute. It fails when the attribute
	// is missing or holds a non-string value.
	Attr(name string) (string, error)

	// Frame returns the element's screen position and size in points.
	Frame() (x, y, width, height float64, err error)

	// Child returns a single element-valued attribute such as AXParent.
	Child(name string) (Node, error)

	// Children returns an element-array attribute, reading at most max
	// entries.
	Children(name string, max int) ([]Node, error)

	// Actions returns up to max of the element's supported action names.
	Actions(max int) ([]string, error)
}

// Tree exposes the two roots a discovery pass starts from. A Tree is
// bound to a single application process.
type Tree interface {
	// App returns the application element.
	App() (Node, error)

	// SystemFocused returns the element holding keyboard focus system
	// wide. It can belong to another application.
	SystemFocused() (Node, error)
}

// Limits bound a traversal. Zero values select the defaults.
type Limits struct {
	MaxDepth    int
	MaxElements int
}

const (
	DefaultMaxDepth    = 12
	DefaultMaxElements = 300
)

func (l Limits) withDefaults() Limits {
	if l.MaxDepth <= 0 {
		l.MaxDepth = DefaultMaxDepth
	}
	if l.MaxElements <= 0 {
		l.MaxElements = DefaultMaxElements
	}
	return l
}
