//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework ApplicationServices -framework Foundation
#include <CoreGraphics/CoreGraphics.h>
#include <unistd.h>

// Click at screen coordinates with specified button, click count and
// modifier flags. button: 0=left, 1=right, 2=middle (maps to kCGMouseButton*)
// count: 1=single, 2=double
static int cg_click(float x, float y, int button, int count, unsigned long long flags) {
    CGPoint point = CGPointMake(x, y);

    CGEventType downType, upType;
    CGMouseButton cgButton;

    switch (button) {
        case 1:  // right
            cgButton = kCGMouseButtonRight;
            downType = kCGEventRightMouseDown;
            upType = kCGEventRightMouseUp;
            break;
        case 2:  // middle
            cgButton = kCGMouseButtonCenter;
            downType = kCGEventOtherMouseDown;
            upType = kCGEventOtherMouseUp;
            break;
        default:  // left (0)
            cgButton = kCGMouseButtonLeft;
            downType = kCGEventLeftMouseDown;
            upType = kCGEventLeftMouseUp;
            break;
    }

    for (int i = 0; i < count; i++) {
        if (i > 0) {
            // Pause between pairs so the second click registers as part
            // of the same multi-click sequence.
            usleep(50000);
        }
        CGEventRef down = CGEventCreateMouseEvent(NULL, downType, point, cgButton);
        CGEventRef up = CGEventCreateMouseEvent(NULL, upType, point, cgButton);
        if (!down || !up) {
            if (down) CFRelease(down);
            if (up) CFRelease(up);
            return -1;
        }
        // Set click count for multi-click events
        CGEventSetIntegerValueField(down, kCGMouseEventClickState, i + 1);
        CGEventSetIntegerValueField(up, kCGMouseEventClickState, i + 1);
        if (flags != 0) {
            CGEventSetFlags(down, (CGEventFlags)flags);
            CGEventSetFlags(up, (CGEventFlags)flags);
        }
        CGEventPost(kCGHIDEventTap, down);
        // Small delay between press and release so apps see a real click
        usleep(10000); // 10ms
        CGEventPost(kCGHIDEventTap, up);
        CFRelease(down);
        CFRelease(up);
    }
    return 0;
}

static int cg_move_mouse(float x, float y) {
    CGPoint point = CGPointMake(x, y);
    CGEventRef move = CGEventCreateMouseEvent(NULL, kCGEventMouseMoved, point, kCGMouseButtonLeft);
    if (!move) return -1;
    CGEventPost(kCGHIDEventTap, move);
    CFRelease(move);
    return 0;
}
*/
import "C"

import (
	"fmt"
	"strings"

	"github.com/keyclick/keyclick/internal/platform"
)

// DarwinInputter implements the platform.Inputter interface for macOS.
type DarwinInputter struct{}

// NewInputter creates a new macOS inputter.
func NewInputter() *DarwinInputter {
	return &DarwinInputter{}
}

func (inp *DarwinInputter) Click(x, y int, button platform.MouseButton, count int, modifiers []string) error {
	if count < 1 {
		count = 1
	}
	cButton := C.int(0)
	switch button {
	case platform.MouseRight:
		cButton = 1
	case platform.MouseMiddle:
		cButton = 2
	}
	flags, err := parseModifiers(modifiers)
	if err != nil {
		return err
	}
	if C.cg_click(C.float(x), C.float(y), cButton, C.int(count), C.ulonglong(flags)) != 0 {
		return fmt.Errorf("failed to click at (%d, %d)", x, y)
	}
	return nil
}

func (inp *DarwinInputter) MoveMouse(x, y int) error {
	if C.cg_move_mouse(C.float(x), C.float(y)) != 0 {
		return fmt.Errorf("failed to move mouse to (%d, %d)", x, y)
	}
	return nil
}

// macOS modifier key flags.
var modifierMap = map[string]uint64{
	"cmd": uint64(C.kCGEventFlagMaskCommand), "command": uint64(C.kCGEventFlagMaskCommand),
	"shift": uint64(C.kCGEventFlagMaskShift),
	"ctrl": uint64(C.kCGEventFlagMaskControl), "control": uint64(C.kCGEventFlagMaskControl),
	"alt": uint64(C.kCGEventFlagMaskAlternate), "opt": uint64(C.kCGEventFlagMaskAlternate), "option": uint64(C.kCGEventFlagMaskAlternate),
}

func parseModifiers(modifiers []string) (uint64, error) {
	var flags uint64
	for _, m := range modifiers {
		m = strings.ToLower(strings.TrimSpace(m))
		if m == "" {
			continue
		}
		mod, ok := modifierMap[m]
		if !ok {
			return 0, fmt.Errorf("unknown modifier: %q", m)
		}
		flags |= mod
	}
	return flags, nil
}
