package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/keyclick/keyclick/internal/discovery"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch focus changes and stream them as JSONL",
	Long: `Poll the frontmost application and emit one JSON line per focus change.
Every change invalidates the discovery cache and, unless --prefetch=false,
warms it for the newly focused app so the next activation starts fast.

Output is always JSONL regardless of the --format flag.

Use Ctrl+C or --duration to stop watching.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Int("interval", 0, "Polling interval in milliseconds (0 = config default)")
	watchCmd.Flags().Bool("prefetch", true, "Warm the cache for the newly focused app")
	watchCmd.Flags().Int("duration", 0, "Max seconds to watch (0 = until Ctrl+C)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	provider, orch, err := newPipeline()
	if err != nil {
		return err
	}
	if provider.Apps == nil {
		return fmt.Errorf("app lookup not available on this platform")
	}

	intervalMs, _ := cmd.Flags().GetInt("interval")
	prefetch, _ := cmd.Flags().GetBool("prefetch")
	durationSec, _ := cmd.Flags().GetInt("duration")

	interval := cfg.WatchInterval()
	if intervalMs > 0 {
		interval = time.Duration(intervalMs) * time.Millisecond
	}

	ctx := cmd.Context()
	if durationSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(durationSec)*time.Second)
		defer cancel()
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)

	watcher := discovery.NewWatcher(provider.Apps, orch, interval, prefetch, logger)
	return watcher.Run(ctx, func(ev discovery.FocusEvent) {
		enc.Encode(ev)
	})
}
