package walker

import "github.com/keyclick/keyclick/internal/model"

const (
	// Per-node child scan cap. Protects against pathological trees that
	// report thousands of children.
	maxChildrenPerNode = 100

	// Action list probe cap.
	maxActionsProbe = 20

	// Children scanned when deriving a row title, and text children
	// scanned inside a single cell.
	maxRowTitleChildren = 10
	maxCellTextChildren = 5

	// Elements smaller than this in either dimension are collapsed or
	// invisible and never useful as click targets.
	minVisibleSize = 4.0

	// Coordinates below this are sentinel values for offscreen elements.
	minSaneCoord = -10000.0
)

// Collect walks the tree rooted at start depth-first and appends every
// clickable, visible element to the result. When bounds is non-nil,
// elements that do not overlap it are dropped.
func Collect(start Node, bounds *model.WindowBounds, lim Limits) []model.RawElement {
	lim = lim.withDefaults()
	elements := make([]model.RawElement, 0, 64)
	collect(start, &elements, 0, bounds, false, lim)
	return elements
}

func collect(n Node, out *[]model.RawElement, depth int, bounds *model.WindowBounds, insideRow bool, lim Limits) {
	if depth > lim.MaxDepth || len(*out) >= lim.MaxElements {
		return
	}

	role := attrOr(n, AttrRole)
	if role == "" || role == model.UnknownRole {
		return
	}

	// Containers are traversed but never emitted themselves.
	container := model.ContainerRoles[role]

	// Inside a row the cells, text and images are redundant targets.
	// Clicking the row is sufficient.
	rowSuppressed := insideRow && model.RowSuppressedRoles[role]

	// Probing AXActions on arbitrary roles can crash some apps, so only
	// roles known to carry actions are checked.
	probeActions := model.ActionProbeRoles[role]

	clickable := !container && !rowSuppressed &&
		(model.ClickableRoles[role] || (probeActions && hasPressAction(n)))

	isRow := role == "AXRow"

	if clickable {
		if x, y, w, h, err := n.Frame(); err == nil && visible(x, y, w, h) {
			if bounds == nil || bounds.Contains(x, y, w, h) {
				title := ""
				if isRow {
					title = rowTitle(n)
				} else {
					title = firstNonEmpty(n, AttrTitle, AttrDescription, AttrValue, AttrLabel, AttrHelp)
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
		}
	}

	// A row is emitted as a single target, never unpacked.
	if isRow {
		return
	}

	children, err := n.Children(AttrChildren, maxChildrenPerNode)
	if err != nil {
		return
	}
	for _, child := range children {
		if len(*out) >= lim.MaxElements {
			break
		}
		collect(child, out, depth+1, bounds, insideRow || isRow, lim)
	}
}

func visible(x, y, w, h float64) bool {
	return w >= minVisibleSize && h >= minVisibleSize && x >= minSaneCoord && y >= minSaneCoord
}

func hasPressAction(n Node) bool {
	actions, err := n.Actions(maxActionsProbe)
	if err != nil {
		return false
	}
	for _, a := range actions {
		if a == "AXPress" || a == "AXShowMenu" {
			return true
		}
	}
	return false
}

// rowTitle derives a label for a row from its first cell or text child.
func rowTitle(row Node) string {
	children, err := row.Children(AttrChildren, maxRowTitleChildren)
	if err != nil {
		return ""
	}
	for _, child := range children {
		switch attrOr(child, AttrRole) {
		case "AXCell":
			if t := cellText(child); t != "" {
				return t
			}
		case "AXStaticText":
			if t := firstNonEmpty(child, AttrValue, AttrTitle); t != "" {
				return t
			}
		}
	}
	return ""
}

// cellText finds the first text value on an element or its immediate
// static text children.
func cellText(n Node) string {
	if t := firstNonEmpty(n, AttrValue, AttrTitle, AttrDescription); t != "" {
		return t
	}
	children, err := n.Children(AttrChildren, maxCellTextChildren)
	if err != nil {
		return ""
	}
	for _, child := range children {
		if attrOr(child, AttrRole) != "AXStaticText" {
			continue
		}
		if t := firstNonEmpty(child, AttrValue, AttrTitle); t != "" {
			return t
		}
	}
	return ""
}

// attrOr reads a string attribute, mapping failure to the empty string.
func attrOr(n Node, name string) string {
	s, err := n.Attr(name)
	if err != nil {
		return ""
	}
	return s
}

// firstNonEmpty returns the first attribute holding a non-empty value.
// An attribute that is present but empty does not stop the scan.
func firstNonEmpty(n Node, names ...string) string {
	for _, name := range names {
		if s, err := n.Attr(name); err == nil && s != "" {
			return s
		}
	}
	return ""
}
