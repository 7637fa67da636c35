package walker

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/keyclick/keyclick/internal/model"
)

// DefaultSettleDelay is how long the helper waits before querying, giving
// animations and focus changes time to finish.
const DefaultSettleDelay = 50 * time.Millisecond

// Output is the helper's stdout payload, written as a single JSON line.
type Output struct {
	Elements []model.RawElement `json:"elements"`
	IsModal  bool               `json:"is_modal"`
}

// Args are the helper's positional arguments. Every argument is
// optional; missing ones select the defaults, and a PID of zero targets
// the frontmost application.
type Args struct {
	PID    int
	Settle time.Duration
	Limits Limits
}

// ParseArgs reads "<pid> <settle_delay_ms> <max_depth> <max_elements>".
func ParseArgs(argv []string) (Args, error) {
	if len(argv) > 4 {
		return Args{}, fmt.Errorf("expected at most 4 arguments, got %d", len(argv))
	}
	vals := make([]int, len(argv))
	for i, raw := range argv {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Args{}, fmt.Errorf("invalid argument %q", raw)
		}
		vals[i] = n
	}
	args := Args{Settle: DefaultSettleDelay}
	if len(vals) > 0 {
		args.PID = vals[0]
	}
	if len(vals) > 1 {
		args.Settle = time.Duration(vals[1]) * time.Millisecond
	}
	if len(vals) > 2 {
		args.Limits.MaxDepth = vals[2]
	}
	if len(vals) > 3 {
		args.Limits.MaxElements = vals[3]
	}
	return args, nil
}

// Run waits for the settle delay, performs one discovery pass and writes
// the result to w as a single JSON line.
func Run(w io.Writer, tree Tree, settle time.Duration, lim Limits) error {
	if settle > 0 {
		time.Sleep(settle)
	}
	out, err := Query(tree, lim)
	if err != nil {
		return err
	}
	data, merr := json.Marshal(out)
	if merr != nil {
		data = []byte(`{"elements":[],"is_modal":false}`)
	}
	_, werr := w.Write(append(data, '\n'))
	return werr
}

// WriteError writes the helper's stderr envelope for a failed pass.
func WriteError(w io.Writer, err error) {
	msg := struct {
		Error string `json:"error"`
	}{Error: err.Error()}
	_ = json.NewEncoder(w).Encode(msg)
}
