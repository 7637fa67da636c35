//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation -framework Foundation
#include <ApplicationServices/ApplicationServices.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdlib.h>
#include <string.h>

// Copies a string-valued attribute. Returns a malloc'd UTF-8 string, or
// NULL when the attribute is missing or not a string.
static char *ax_copy_string_attr(AXUIElementRef el, const char *name) {
    CFStringRef cfName = CFStringCreateWithCString(NULL, name, kCFStringEncodingUTF8);
    if (cfName == NULL) return NULL;
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, cfName, &value);
    CFRelease(cfName);
    if (err != kAXErrorSuccess || value == NULL) return NULL;
    if (CFGetTypeID(value) != CFStringGetTypeID()) {
        CFRelease(value);
        return NULL;
    }
    CFStringRef str = (CFStringRef)value;
    CFIndex length = CFStringGetLength(str);
    CFIndex max = CFStringGetMaximumSizeForEncoding(length, kCFStringEncodingUTF8) + 1;
    char *buf = malloc(max);
    if (buf == NULL) {
        CFRelease(value);
        return NULL;
    }
    if (!CFStringGetCString(str, buf, max, kCFStringEncodingUTF8)) {
        free(buf);
        CFRelease(value);
        return NULL;
    }
    CFRelease(value);
    return buf;
}

// Reads AXPosition and AXSize. Returns 0 on success.
static int ax_copy_frame(AXUIElementRef el, double *x, double *y, double *w, double *h) {
    CFTypeRef posValue = NULL;
    CFTypeRef sizeValue = NULL;
    CGPoint pos;
    CGSize size;

    if (AXUIElementCopyAttributeValue(el, CFSTR("AXPosition"), &posValue) != kAXErrorSuccess || posValue == NULL) {
        return -1;
    }
    if (CFGetTypeID(posValue) != AXValueGetTypeID() ||
        !AXValueGetValue((AXValueRef)posValue, kAXValueTypeCGPoint, &pos)) {
        CFRelease(posValue);
        return -1;
    }
    CFRelease(posValue);

    if (AXUIElementCopyAttributeValue(el, CFSTR("AXSize"), &sizeValue) != kAXErrorSuccess || sizeValue == NULL) {
        return -1;
    }
    if (CFGetTypeID(sizeValue) != AXValueGetTypeID() ||
        !AXValueGetValue((AXValueRef)sizeValue, kAXValueTypeCGSize, &size)) {
        CFRelease(sizeValue);
        return -1;
    }
    CFRelease(sizeValue);

    *x = pos.x;
    *y = pos.y;
    *w = size.width;
    *h = size.height;
    return 0;
}

// Copies a single element-valued attribute. Returns a retained ref or NULL.
static AXUIElementRef ax_copy_element_attr(AXUIElementRef el, const char *name) {
    CFStringRef cfName = CFStringCreateWithCString(NULL, name, kCFStringEncodingUTF8);
    if (cfName == NULL) return NULL;
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, cfName, &value);
    CFRelease(cfName);
    if (err != kAXErrorSuccess || value == NULL) return NULL;
    if (CFGetTypeID(value) != AXUIElementGetTypeID()) {
        CFRelease(value);
        return NULL;
    }
    return (AXUIElementRef)value;
}

// Copies an element-array attribute into out, retaining each entry.
// Returns the number filled, or -1 when the attribute is unavailable.
static int ax_copy_element_array(AXUIElementRef el, const char *name, AXUIElementRef *out, int max) {
    CFStringRef cfName = CFStringCreateWithCString(NULL, name, kCFStringEncodingUTF8);
    if (cfName == NULL) return -1;
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, cfName, &value);
    CFRelease(cfName);
    if (err != kAXErrorSuccess || value == NULL) return -1;
    if (CFGetTypeID(value) != CFArrayGetTypeID()) {
        CFRelease(value);
        return -1;
    }
    CFArrayRef arr = (CFArrayRef)value;
    CFIndex count = CFArrayGetCount(arr);
    int n = 0;
    for (CFIndex i = 0; i < count && n < max; i++) {
        const void *item = CFArrayGetValueAtIndex(arr, i);
        if (item == NULL || CFGetTypeID(item) != AXUIElementGetTypeID()) continue;
        CFRetain(item);
        out[n++] = (AXUIElementRef)item;
    }
    CFRelease(value);
    return n;
}

// Copies the element's action names into out as malloc'd strings.
// Returns the number filled, or -1 when the attribute is unavailable.
static int ax_copy_actions(AXUIElementRef el, char **out, int max) {
    CFTypeRef value = NULL;
    if (AXUIElementCopyAttributeValue(el, CFSTR("AXActions"), &value) != kAXErrorSuccess || value == NULL) {
        return -1;
    }
    if (CFGetTypeID(value) != CFArrayGetTypeID()) {
        CFRelease(value);
        return -1;
    }
    CFArrayRef arr = (CFArrayRef)value;
    CFIndex count = CFArrayGetCount(arr);
    int n = 0;
    for (CFIndex i = 0; i < count && n < max; i++) {
        const void *item = CFArrayGetValueAtIndex(arr, i);
        if (item == NULL || CFGetTypeID(item) != CFStringGetTypeID()) continue;
        CFStringRef str = (CFStringRef)item;
        CFIndex length = CFStringGetLength(str);
        CFIndex maxLen = CFStringGetMaximumSizeForEncoding(length, kCFStringEncodingUTF8) + 1;
        char *buf = malloc(maxLen);
        if (buf == NULL) continue;
        if (CFStringGetCString(str, buf, maxLen, kCFStringEncodingUTF8)) {
            out[n++] = buf;
        } else {
            free(buf);
        }
    }
    CFRelease(value);
    return n;
}

static AXUIElementRef ax_create_app(pid_t pid) {
    return AXUIElementCreateApplication(pid);
}

// Returns the element holding keyboard focus system wide, retained.
static AXUIElementRef ax_copy_system_focused(void) {
    AXUIElementRef system = AXUIElementCreateSystemWide();
    if (system == NULL) return NULL;
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(system, CFSTR("AXFocusedUIElement"), &value);
    CFRelease(system);
    if (err != kAXErrorSuccess || value == NULL) return NULL;
    if (CFGetTypeID(value) != AXUIElementGetTypeID()) {
        CFRelease(value);
        return NULL;
    }
    return (AXUIElementRef)value;
}

static void ax_release(AXUIElementRef el) {
    if (el != NULL) CFRelease(el);
}
*/
import "C"
import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/keyclick/keyclick/internal/walker"
)

// AXTreeSource implements platform.TreeSource against the live
// accessibility layer.
type AXTreeSource struct{}

// NewTreeSource creates the macOS tree source.
func NewTreeSource() *AXTreeSource {
	return &AXTreeSource{}
}

func (s *AXTreeSource) Tree(pid int) (walker.Tree, error) {
	if err := CheckAccessibilityPermission(); err != nil {
		return nil, err
	}
	if pid <= 0 {
		return nil, fmt.Errorf("invalid pid %d", pid)
	}
	return &axTree{pid: pid}, nil
}

type axTree struct {
	pid int
}

func (t *axTree) App() (walker.Node, error) {
	ref := C.ax_create_app(C.pid_t(t.pid))
	if ref == nil {
		return nil, fmt.Errorf("could not create accessibility element for pid %d", t.pid)
	}
	return newAXNode(ref), nil
}

func (t *axTree) SystemFocused() (walker.Node, error) {
	ref := C.ax_copy_system_focused()
	if ref == nil {
		return nil, fmt.Errorf("no system focused element")
	}
	return newAXNode(ref), nil
}

// axNode wraps a retained AXUIElementRef. The ref is released by a
// finalizer once the node becomes unreachable.
type axNode struct {
	ref C.AXUIElementRef
}

func newAXNode(ref C.AXUIElementRef) *axNode {
	n := &axNode{ref: ref}
	runtime.SetFinalizer(n, (*axNode).release)
	return n
}

func (n *axNode) release() {
	C.ax_release(n.ref)
	n.ref = nil
}

func (n *axNode) Attr(name string) (string, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	cstr := C.ax_copy_string_attr(n.ref, cName)
	runtime.KeepAlive(n)
	if cstr == nil {
		return "", fmt.Errorf("attribute %s unavailable", name)
	}
	defer C.free(unsafe.Pointer(cstr))
	return C.GoString(cstr), nil
}

func (n *axNode) Frame() (float64, float64, float64, float64, error) {
	var x, y, w, h C.double
	rc := C.ax_copy_frame(n.ref, &x, &y, &w, &h)
	runtime.KeepAlive(n)
	if rc != 0 {
		return 0, 0, 0, 0, fmt.Errorf("element frame unavailable")
	}
	return float64(x), float64(y), float64(w), float64(h), nil
}

func (n *axNode) Child(name string) (walker.Node, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	ref := C.ax_copy_element_attr(n.ref, cName)
	runtime.KeepAlive(n)
	if ref == nil {
		return nil, fmt.Errorf("attribute %s unavailable", name)
	}
	return newAXNode(ref), nil
}

func (n *axNode) Children(name string, max int) ([]walker.Node, error) {
	if max <= 0 {
		return nil, nil
	}
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	refs := make([]C.AXUIElementRef, max)
	count := C.ax_copy_element_array(n.ref, cName, &refs[0], C.int(max))
	runtime.KeepAlive(n)
	if count < 0 {
		return nil, fmt.Errorf("attribute %s unavailable", name)
	}
	nodes := make([]walker.Node, int(count))
	for i := range nodes {
		nodes[i] = newAXNode(refs[i])
	}
	return nodes, nil
}

func (n *axNode) Actions(max int) ([]string, error) {
	if max <= 0 {
		return nil, nil
	}
	buf := make([]*C.char, max)
	count := C.ax_copy_actions(n.ref, &buf[0], C.int(max))
	runtime.KeepAlive(n)
	if count < 0 {
		return nil, fmt.Errorf("actions unavailable")
	}
	actions := make([]string, int(count))
	for i := range actions {
		actions[i] = C.GoString(buf[i])
		C.free(unsafe.Pointer(buf[i]))
	}
	return actions, nil
}
