package model

// AppInfo identifies a running application, as reported by the platform
// layer for the frontmost app. BundleID is empty on platforms without
// bundle identifiers.
type AppInfo struct {
	Name     string `yaml:"app" json:"app"`
	BundleID string `yaml:"bundle,omitempty" json:"bundle,omitempty"`
	PID      int    `yaml:"pid" json:"pid"`
}
