//go:build darwin

package cmd

// Importing the darwin package registers the platform provider.
import _ "github.com/keyclick/keyclick/internal/platform/darwin"
