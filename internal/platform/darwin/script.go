//go:build darwin

package darwin

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// OsascriptRunner implements platform.ScriptRunner by shelling out to
// the osascript binary.
type OsascriptRunner struct{}

// NewScriptRunner creates a new osascript runner.
func NewScriptRunner() *OsascriptRunner {
	return &OsascriptRunner{}
}

func (r *OsascriptRunner) RunScript(ctx context.Context, source string) (string, error) {
	cmd := exec.CommandContext(ctx, "osascript", "-e", source)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("osascript: %w", ctx.Err())
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("osascript: %s", msg)
		}
		return "", fmt.Errorf("osascript: %w", err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
