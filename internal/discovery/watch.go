package discovery

import (
	"context"
	"time"

	"github.com/keyclick/keyclick/internal/logging"
	"github.com/keyclick/keyclick/internal/platform"
)

// Prefetch outcomes reported in focus events.
const (
	PrefetchOK       = "ok"
	PrefetchFailed   = "failed"
	PrefetchDisabled = "off"
)

// FocusEvent is one frontmost-app change seen by the watcher. The flat
// shape encodes directly as a JSONL line.
type FocusEvent struct {
	TS       time.Time `json:"ts"`
	App      string    `json:"app"`
	BundleID string    `json:"bundle_id,omitempty"`
	PID      int       `json:"pid"`
	Prefetch string    `json:"prefetch"`
}

// Watcher polls the frontmost application and reacts to focus changes:
// the cache is invalidated and, when enabled, the new app is prefetched
// so the next activation starts warm.
type Watcher struct {
	apps     platform.Apps
	orch     *Orchestrator
	interval time.Duration
	prefetch bool
	log      logging.Logger
}

// NewWatcher creates a focus watcher polling at the given interval.
func NewWatcher(apps platform.Apps, orch *Orchestrator, interval time.Duration, prefetch bool, log logging.Logger) *Watcher {
	return &Watcher{
		apps:     apps,
		orch:     orch,
		interval: interval,
		prefetch: prefetch,
		log:      log,
	}
}

// Run polls until ctx is done, calling onChange for every confirmed
// focus change. The first successful poll only establishes the
// baseline. Poll failures are logged and skipped.
func (w *Watcher) Run(ctx context.Context, onChange func(FocusEvent)) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	lastPID := -1
	if app, err := w.apps.Frontmost(); err == nil {
		lastPID = app.PID
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		app, err := w.apps.Frontmost()
		if err != nil {
			w.log.Debug("frontmost poll failed", logging.Error(err))
			continue
		}
		if app.PID == lastPID {
			continue
		}
		lastPID = app.PID

		w.log.Debug("focus changed",
			logging.String("app", app.Name), logging.Int("pid", app.PID))
		w.orch.InvalidateAll()

		outcome := PrefetchDisabled
		if w.prefetch {
			if err := w.orch.PrefetchWait(ctx, app.PID); err != nil {
				outcome = PrefetchFailed
			} else {
				outcome = PrefetchOK
			}
		}

		if onChange != nil {
			onChange(FocusEvent{
				TS:       time.Now(),
				App:      app.Name,
				BundleID: app.BundleID,
				PID:      app.PID,
				Prefetch: outcome,
			})
		}
	}
}
