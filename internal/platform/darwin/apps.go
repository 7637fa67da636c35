//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework Foundation
#import <AppKit/AppKit.h>
#include <stdlib.h>
#include <string.h>

static char *ns_strdup(NSString *str) {
    if (str == nil) return strdup("");
    const char *utf8 = [str UTF8String];
    return strdup(utf8 != NULL ? utf8 : "");
}

static int ns_app_details(NSRunningApplication *app, char **name, char **bundle, pid_t *pid) {
    if (app == nil) return -1;
    *name = ns_strdup(app.localizedName);
    *bundle = ns_strdup(app.bundleIdentifier);
    *pid = app.processIdentifier;
    return 0;
}

static int ns_frontmost_app(char **name, char **bundle, pid_t *pid) {
    @autoreleasepool {
        NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
        return ns_app_details(app, name, bundle, pid);
    }
}

static int ns_app_for_pid(pid_t wantPid, char **name, char **bundle, pid_t *pid) {
    @autoreleasepool {
        NSRunningApplication *app =
            [NSRunningApplication runningApplicationWithProcessIdentifier:wantPid];
        return ns_app_details(app, name, bundle, pid);
    }
}

// Looks up a running application by localized name, case insensitive.
static int ns_find_app(const char *wantName, char **name, char **bundle, pid_t *pid) {
    @autoreleasepool {
        NSString *want = [[NSString stringWithUTF8String:wantName] lowercaseString];
        if (want == nil) return -1;
        for (NSRunningApplication *app in [[NSWorkspace sharedWorkspace] runningApplications]) {
            NSString *candidate = [app.localizedName lowercaseString];
            if (candidate != nil && [candidate isEqualToString:want]) {
                return ns_app_details(app, name, bundle, pid);
            }
        }
        return -1;
    }
}
*/
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/keyclick/keyclick/internal/model"
)

// DarwinApps implements the platform.Apps interface for macOS using
// NSWorkspace.
type DarwinApps struct{}

// NewApps creates a new macOS application lookup.
func NewApps() *DarwinApps {
	return &DarwinApps{}
}

func (a *DarwinApps) Frontmost() (model.AppInfo, error) {
	var cName, cBundle *C.char
	var cPid C.pid_t

	if C.ns_frontmost_app(&cName, &cBundle, &cPid) != 0 {
		return model.AppInfo{}, fmt.Errorf("failed to get frontmost app")
	}
	defer C.free(unsafe.Pointer(cName))
	defer C.free(unsafe.Pointer(cBundle))

	return model.AppInfo{
		Name:     C.GoString(cName),
		BundleID: C.GoString(cBundle),
		PID:      int(cPid),
	}, nil
}

func (a *DarwinApps) ByPID(pid int) (model.AppInfo, error) {
	var cName, cBundle *C.char
	var cPid C.pid_t

	if C.ns_app_for_pid(C.pid_t(pid), &cName, &cBundle, &cPid) != 0 {
		return model.AppInfo{}, fmt.Errorf("no running application with pid %d", pid)
	}
	defer C.free(unsafe.Pointer(cName))
	defer C.free(unsafe.Pointer(cBundle))

	return model.AppInfo{
		Name:     C.GoString(cName),
		BundleID: C.GoString(cBundle),
		PID:      int(cPid),
	}, nil
}

func (a *DarwinApps) Find(name string) (model.AppInfo, error) {
	cWant := C.CString(name)
	defer C.free(unsafe.Pointer(cWant))

	var cName, cBundle *C.char
	var cPid C.pid_t

	if C.ns_find_app(cWant, &cName, &cBundle, &cPid) != 0 {
		return model.AppInfo{}, fmt.Errorf("no running application named %q", name)
	}
	defer C.free(unsafe.Pointer(cName))
	defer C.free(unsafe.Pointer(cBundle))

	return model.AppInfo{
		Name:     C.GoString(cName),
		BundleID: C.GoString(cBundle),
		PID:      int(cPid),
	}, nil
}
