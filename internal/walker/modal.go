package walker

import (
	"fmt"

	"github.com/keyclick/keyclick/internal/model"
)

const (
	// Child scan caps for the various menu detection passes.
	maxFocusMenuScan  = 10
	maxAppMenuScan    = 20
	maxMenuWindowScan = 10
	maxMenuFindScan   = 30
	maxMenuItemScan   = 50

	// Recursion bound when hunting for popup menus inside windows.
	maxMenuFindDepth = 3

	// Separator items report an empty title and a few pixels of height.
	minMenuItemHeight = 10.0
)

// Query runs one full discovery pass over the application's tree. Open
// menus win over everything else, then sheets and dialogs attached to
// the focused window, then app-level sheets. Only when no modal surface
// exists does the pass walk the window itself.
func Query(tree Tree, lim Limits) (Output, error) {
	lim = lim.withDefaults()

	elements := make([]model.RawElement, 0, 64)
	if collectMenus(tree, &elements) {
		return Output{Elements: elements, IsModal: true}, nil
	}

	app, err := tree.App()
	if err != nil {
		return Output{}, fmt.Errorf("application element: %w", err)
	}

	// Cheap probe that fails fast when the target app is hung or denies
	// accessibility access.
	_, _ = app.Attr(AttrRole)

	focused := focusedWindow(app)

	if focused != nil {
		if out, ok := modalSurface(focused, AttrSheets, lim); ok {
			return out, nil
		}
		if out, ok := modalSurface(focused, AttrDialogs, lim); ok {
			return out, nil
		}
	}

	// Some apps report sheets on the application element instead of the
	// window.
	if out, ok := modalSurface(app, AttrSheets, lim); ok {
		return out, nil
	}

	start, bounds := startElement(app, focused)
	collect(start, &elements, 0, bounds, false, lim)
	return Output{Elements: elements}, nil
}

// modalSurface collects the first sheet or dialog under owner, bounded
// by the surface's own frame.
func modalSurface(owner Node, attr string, lim Limits) (Output, bool) {
	surfaces, err := owner.Children(attr, 1)
	if err != nil || len(surfaces) == 0 {
		return Output{}, false
	}
	surface := surfaces[0]
	elements := make([]model.RawElement, 0, 32)
	collect(surface, &elements, 0, frameBounds(surface), false, lim)
	return Output{Elements: elements, IsModal: true}, true
}

// focusedWindow returns the app's focused window, or nil when it is
// missing or too broken to answer a role query.
func focusedWindow(app Node) Node {
	w, err := app.Child(AttrFocusedWindow)
	if err != nil {
		return nil
	}
	if _, err := w.Attr(AttrRole); err != nil {
		return nil
	}
	return w
}

// startElement picks the traversal root for a non-modal pass: the
// focused window, else the first window, else the app element itself.
func startElement(app, focused Node) (Node, *model.WindowBounds) {
	if focused != nil {
		return focused, frameBounds(focused)
	}
	if windows, err := app.Children(AttrWindows, 1); err == nil && len(windows) > 0 {
		return windows[0], frameBounds(windows[0])
	}
	return app, nil
}

func frameBounds(n Node) *model.WindowBounds {
	x, y, w, h, err := n.Frame()
	if err != nil {
		return nil
	}
	return &model.WindowBounds{X: x, Y: y, Width: w, Height: h}
}

// collectMenus detects an open popup or context menu and collects its
// items. Menus live outside the window hierarchy, so detection starts
// from the system focus and falls back to scanning the app element.
func collectMenus(tree Tree, out *[]model.RawElement) bool {
	if focused, err := tree.SystemFocused(); err == nil {
		role := attrOr(focused, AttrRole)

		// An open menu usually owns keyboard focus, either directly or
		// through one of its items.
		if role == "AXMenuItem" {
			if parent, err := focused.Child(AttrParent); err == nil {
				if attrOr(parent, AttrRole) == "AXMenu" {
					menuItems(parent, out)
					return len(*out) > 0
				}
			}
		}
		if role == "AXMenu" {
			menuItems(focused, out)
			return len(*out) > 0
		}

		// A popup button with an open menu holds focus while the menu
		// hangs off its children.
		if children, err := focused.Children(AttrChildren, maxFocusMenuScan); err == nil {
			for _, child := range children {
				if attrOr(child, AttrRole) != "AXMenu" {
					continue
				}
				menuItems(child, out)
				if len(*out) > 0 {
					return true
				}
			}
		}
	}

	app, err := tree.App()
	if err != nil {
		return false
	}

	// Some apps hang context menus off the extras menu bar.
	if extras, err := app.Child(AttrExtrasMenuBar); err == nil {
		if attrOr(extras, AttrRole) == "AXMenu" {
			menuItems(extras, out)
			if len(*out) > 0 {
				return true
			}
		}
	}

	// Right-click context menus often appear as direct children of the
	// application element without any focus change.
	if children, err := app.Children(AttrChildren, maxAppMenuScan); err == nil {
		for _, child := range children {
			switch attrOr(child, AttrRole) {
			case "AXMenu":
				menuItems(child, out)
				if len(*out) > 0 {
					return true
				}
			case "AXWindow":
				if findMenus(child, out, 0) {
					return true
				}
			}
		}
	}

	if windows, err := app.Children(AttrWindows, maxMenuWindowScan); err == nil {
		for _, w := range windows {
			if findMenus(w, out, 0) {
				return true
			}
		}
	}

	return false
}

// findMenus searches an element's subtree for an open menu, bounded to a
// shallow depth.
func findMenus(n Node, out *[]model.RawElement, depth int) bool {
	if depth > maxMenuFindDepth {
		return false
	}
	children, err := n.Children(AttrChildren, maxMenuFindScan)
	if err != nil {
		return false
	}
	for _, child := range children {
		role := attrOr(child, AttrRole)
		if role == "AXMenu" {
			menuItems(child, out)
			if len(*out) > 0 {
				return true
			}
		}
		switch role {
		case "AXStaticText", "AXImage", "AXTextField", "AXTextArea":
			// Leaf content never hosts a popup menu.
		default:
			if findMenus(child, out, depth+1) {
				return true
			}
		}
	}
	return false
}

// menuItems collects the clickable items of a menu, flattening open
// submenus and skipping separators.
func menuItems(menu Node, out *[]model.RawElement) {
	children, err := menu.Children(AttrChildren, maxMenuItemScan)
	if err != nil {
		return
	}
	for _, child := range children {
		role := attrOr(child, AttrRole)
		if role == "AXMenuItem" {
			x, y, w, h, err := child.Frame()
			if err != nil || w <= 0 || h <= 0 {
				continue
			}
			title := firstNonEmpty(child, AttrTitle, AttrDescription)
			if title == "" && h <= minMenuItemHeight {
				continue
			}
			*out = append(*out, model.RawElement{
				X:      x,
				Y:      y,
				Width:  w,
				Height: h,
				Role:   role,
				Title:  title,
			})
		}
		if role == "AXMenu" {
			menuItems(child, out)
		}
	}
}
