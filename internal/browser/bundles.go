// Package browser supplements native discovery with clickable elements
// queried from a browser's active tab. Chromium-family browsers expose
// almost nothing useful through the accessibility tree, so page content
// is read by evaluating a bounded JavaScript query over the scripting
// bridge. Safari exposes web content natively and needs no supplement.
package browser

// Bundle ids of recognized browsers.
const (
	BundleSafari = "com.apple.Safari"
	BundleChrome = "com.google.Chrome"
	BundleArc    = "company.thebrowser.Browser"
	BundleBrave  = "com.brave.Browser"
	BundleEdge   = "com.microsoft.edgemac"
)

// Browser describes how a recognized browser is queried. Name is the
// application name the scripting bridge addresses. Scripted browsers
// accept "execute javascript" on the active tab; non-scripted ones are
// covered by the native walk.
type Browser struct {
	Name     string
	Scripted bool
}

var browsers = map[string]Browser{
	BundleSafari: {Name: "Safari", Scripted: false},
	BundleChrome: {Name: "Google Chrome", Scripted: true},
	BundleBrave:  {Name: "Brave Browser", Scripted: true},
	BundleEdge:   {Name: "Microsoft Edge", Scripted: true},
	BundleArc:    {Name: "Arc", Scripted: true},
}

// Detect looks up a browser by bundle id. ok is false for anything not
// in the recognition table.
func Detect(bundleID string) (Browser, bool) {
	b, ok := browsers[bundleID]
	return b, ok
}
