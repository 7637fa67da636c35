//go:build darwin

// Package darwin implements the platform backends for macOS on top of
// the Accessibility, CoreGraphics and AppKit APIs. Everything except the
// osascript runner requires CGo; when CGo is disabled the provider stays
// unregistered and the CLI reports the platform as unsupported.
package darwin
