//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>
#include <stdlib.h>
#include <string.h>

static int cg_check_screen_recording(void) {
    return CGPreflightScreenCaptureAccess() ? 1 : 0;
}

// Captures the main display. Returns malloc'd BGRA pixel data, or NULL
// on failure. The caller owns the buffer.
static unsigned char *cg_capture_display(int *width, int *height, int *stride) {
    CGImageRef image = CGDisplayCreateImage(CGMainDisplayID());
    if (image == NULL) return NULL;

    size_t w = CGImageGetWidth(image);
    size_t h = CGImageGetHeight(image);
    size_t bytesPerRow = CGImageGetBytesPerRow(image);

    CGDataProviderRef provider = CGImageGetDataProvider(image);
    CFDataRef data = CGDataProviderCopyData(provider);
    if (data == NULL) {
        CGImageRelease(image);
        return NULL;
    }

    size_t length = (size_t)CFDataGetLength(data);
    unsigned char *buf = malloc(length);
    if (buf == NULL) {
        CFRelease(data);
        CGImageRelease(image);
        return NULL;
    }
    memcpy(buf, CFDataGetBytePtr(data), length);

    *width = (int)w;
    *height = (int)h;
    *stride = (int)bytesPerRow;

    CFRelease(data);
    CGImageRelease(image);
    return buf;
}

// Main display size in points. Differs from capture pixel size on Retina.
static void cg_display_size(double *w, double *h) {
    CGRect bounds = CGDisplayBounds(CGMainDisplayID());
    *w = bounds.size.width;
    *h = bounds.size.height;
}
*/
import "C"
import (
	"fmt"
	"image"
	"unsafe"
)

// CheckScreenRecordingPermission checks if the process has macOS screen recording permission.
func CheckScreenRecordingPermission() error {
	if C.cg_check_screen_recording() == 0 {
		return fmt.Errorf(
			"screen recording permission required\n\n" +
				"Grant permission at: System Settings > Privacy & Security > Screen Recording\n" +
				"Add your terminal app (e.g. Terminal.app, iTerm2, or the IDE running this command).\n" +
				"Then restart the terminal and try again.")
	}
	return nil
}

// DarwinScreenshotter implements platform.Screenshotter for macOS.
type DarwinScreenshotter struct{}

// NewScreenshotter creates a new macOS screenshotter.
func NewScreenshotter() *DarwinScreenshotter {
	return &DarwinScreenshotter{}
}

// CaptureDisplay captures the main display as an RGBA image.
func (s *DarwinScreenshotter) CaptureDisplay() (*image.RGBA, error) {
	if err := CheckScreenRecordingPermission(); err != nil {
		return nil, err
	}

	var w, h, stride C.int
	buf := C.cg_capture_display(&w, &h, &stride)
	if buf == nil {
		return nil, fmt.Errorf("failed to capture display")
	}
	defer C.free(unsafe.Pointer(buf))

	width, height, rowBytes := int(w), int(h), int(stride)
	src := unsafe.Slice((*byte)(unsafe.Pointer(buf)), rowBytes*height)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := src[y*rowBytes:]
		for x := 0; x < width; x++ {
			// CGDisplayCreateImage hands back BGRA byte order.
			b := row[x*4]
			g := row[x*4+1]
			r := row[x*4+2]
			a := row[x*4+3]
			i := img.PixOffset(x, y)
			img.Pix[i] = r
			img.Pix[i+1] = g
			img.Pix[i+2] = b
			img.Pix[i+3] = a
		}
	}
	return img, nil
}

// DisplaySize reports the main display's size in points, the coordinate
// space element frames use.
func (s *DarwinScreenshotter) DisplaySize() (float64, float64, error) {
	var w, h C.double
	C.cg_display_size(&w, &h)
	if w == 0 || h == 0 {
		return 0, 0, fmt.Errorf("failed to read display bounds")
	}
	return float64(w), float64(h), nil
}
