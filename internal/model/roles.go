package model

// UnknownRole is the placeholder role some applications report for nodes
// that carry no semantic information. The walker skips such nodes entirely.
const UnknownRole = "AXUnknown"

// RoleMap maps macOS AXRole values to compact role codes.
var RoleMap = map[string]string{
	"AXButton":             "btn",
	"AXStaticText":         "txt",
	"AXLink":               "lnk",
	"AXImage":              "img",
	"AXTextField":          "input",
	"AXTextArea":           "input",
	"AXCheckBox":           "chk",
	"AXSwitch":             "toggle",
	"AXRadioButton":        "radio",
	"AXMenu":               "menu",
	"AXMenuBar":            "menu",
	"AXMenuItem":           "menuitem",
	"AXMenuBarItem":        "menuitem",
	"AXMenuButton":         "menuitem",
	"AXPopUpButton":        "popup",
	"AXComboBox":           "combo",
	"AXTabGroup":           "tab",
	"AXTab":                "tab",
	"AXList":               "list",
	"AXTable":              "list",
	"AXRow":                "row",
	"AXCell":               "cell",
	"AXGroup":              "group",
	"AXSplitGroup":         "group",
	"AXScrollArea":         "scroll",
	"AXToolbar":            "toolbar",
	"AXToolbarButton":      "btn",
	"AXDisclosureTriangle": "disclosure",
	"AXIncrementor":        "stepper",
	"AXSlider":             "slider",
	"AXHeading":            "heading",
	"AXWebArea":            "web",
	"AXWindow":             "window",
}

// WebTagMap maps DOM tag names (and role attributes) reported by the page
// script to the same compact codes used for native roles.
var WebTagMap = map[string]string{
	"a":        "lnk",
	"button":   "btn",
	"input":    "input",
	"textarea": "input",
	"select":   "popup",
}

// ClickableRoles is the fixed allowlist of raw roles emitted as clickable.
var ClickableRoles = map[string]bool{
	"AXButton":             true,
	"AXLink":               true,
	"AXMenuItem":           true,
	"AXMenuBarItem":        true,
	"AXMenuButton":         true,
	"AXCheckBox":           true,
	"AXRadioButton":        true,
	"AXPopUpButton":        true,
	"AXComboBox":           true,
	"AXTextField":          true,
	"AXTextArea":           true,
	"AXStaticText":         true,
	"AXImage":              true,
	"AXCell":               true,
	"AXRow":                true,
	"AXTab":                true,
	"AXToolbarButton":      true,
	"AXDisclosureTriangle": true,
	"AXIncrementor":        true,
	"AXSlider":             true,
	"AXHeading":            true,
}

// ContainerRoles are structural roles that are never emitted as clickable
// themselves. Their children are still traversed.
var ContainerRoles = map[string]bool{
	"AXMenu":              true,
	"AXMenuBar":           true,
	"AXBusyIndicator":     true,
	"AXProgressIndicator": true,
	"AXValueIndicator":    true,
	"AXScrollBar":         true,
	"AXOutline":           true,
	"AXScrollArea":        true,
	"AXSplitGroup":        true,
	"AXGroup":             true,
}

// ActionProbeRoles are the roles worth asking for an explicit press or
// show-menu action when the role alone does not settle clickability.
// The probe is gated to these because querying actions on arbitrary nodes
// is itself a failure source in badly behaved applications.
var ActionProbeRoles = map[string]bool{
	"AXButton":             true,
	"AXLink":               true,
	"AXMenuItem":           true,
	"AXMenuButton":         true,
	"AXCheckBox":           true,
	"AXRadioButton":        true,
	"AXPopUpButton":        true,
	"AXDisclosureTriangle": true,
	"AXToolbarButton":      true,
	"AXStaticText":         true,
	"AXImage":              true,
	"AXHeading":            true,
	"AXCell":               true,
	"AXRow":                true,
}

// RowSuppressedRoles are suppressed from independent emission anywhere
// inside a row subtree: the row itself stands in for its contents.
var RowSuppressedRoles = map[string]bool{
	"AXCell":       true,
	"AXStaticText": true,
	"AXImage":      true,
}

// MapRole converts a raw accessibility role to a compact code.
func MapRole(axRole string) string {
	if short, ok := RoleMap[axRole]; ok {
		return short
	}
	return "other"
}

// MapWebTag converts a DOM tag name to a compact code.
func MapWebTag(tag string) string {
	if short, ok := WebTagMap[tag]; ok {
		return short
	}
	return "other"
}
