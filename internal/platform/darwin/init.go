//go:build darwin && cgo

package darwin

import "github.com/keyclick/keyclick/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			TreeSource:    NewTreeSource(),
			Inputter:      NewInputter(),
			Apps:          NewApps(),
			ScriptRunner:  NewScriptRunner(),
			Screenshotter: NewScreenshotter(),
		}, nil
	}
	platform.RequestPermissionsFunc = RequestPermissions
}
