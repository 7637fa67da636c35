package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/keyclick/keyclick/internal/walker"
)

// HelperCommand is the hidden subcommand that runs the tree walk when
// the helper is the main binary re-executing itself.
const HelperCommand = "ax-helper"

// HelperInvoker runs the tree walker for one pid and returns its output.
type HelperInvoker interface {
	Invoke(ctx context.Context, pid int) (walker.Output, error)
}

// SubprocessHelper spawns the walker as a throwaway child process, so a
// hung or crashed accessibility query never takes the host down. With an
// empty Path it re-executes the current binary with the hidden helper
// subcommand; otherwise Path names a standalone helper build invoked
// with bare positional arguments.
type SubprocessHelper struct {
	Path        string
	Settle      time.Duration
	MaxDepth    int
	MaxElements int
	Timeout     time.Duration
}

func (h *SubprocessHelper) Invoke(ctx context.Context, pid int) (walker.Output, error) {
	path := h.Path
	var args []string
	if path == "" {
		exe, err := os.Executable()
		if err != nil {
			return walker.Output{}, fmt.Errorf("resolve helper executable: %w", err)
		}
		path = exe
		args = append(args, HelperCommand)
	}
	args = append(args,
		strconv.Itoa(pid),
		strconv.Itoa(int(h.Settle/time.Millisecond)),
		strconv.Itoa(h.MaxDepth),
		strconv.Itoa(h.MaxElements),
	)

	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return walker.Output{}, fmt.Errorf("walker helper timed out after %s", h.Timeout)
		}
		if msg := helperErrorMessage(stderr.Bytes()); msg != "" {
			return walker.Output{}, fmt.Errorf("walker helper: %s", msg)
		}
		return walker.Output{}, fmt.Errorf("walker helper: %w", err)
	}

	var out walker.Output
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &out); err != nil {
		return walker.Output{}, fmt.Errorf("decode walker output: %w", err)
	}
	return out, nil
}

// helperErrorMessage decodes the helper's {"error":"..."} stderr line.
func helperErrorMessage(stderr []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(stderr), &payload); err != nil {
		return ""
	}
	return payload.Error
}
