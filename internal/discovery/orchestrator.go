package discovery

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/keyclick/keyclick/internal/browser"
	"github.com/keyclick/keyclick/internal/logging"
	"github.com/keyclick/keyclick/internal/model"
	"github.com/keyclick/keyclick/internal/platform"
	"github.com/keyclick/keyclick/internal/walker"
)

// ErrNoElements reports that discovery produced nothing clickable.
// Every walker failure collapses into this from the user's point of
// view; the underlying cause goes to the log only.
var ErrNoElements = errors.New("no clickable elements found")

// Options configures the discovery pipeline.
type Options struct {
	Settle        time.Duration
	MaxDepth      int
	MaxElements   int
	HelperTimeout time.Duration
	HelperPath    string
	Supplement    bool
	CacheTTL      time.Duration
}

// Activation is one complete discovery pass, ready for hint assignment.
type Activation struct {
	ID        string
	App       model.AppInfo
	Elements  []model.ScreenElement
	IsModal   bool
	FromCache bool
}

// supplementer is the browser content source.
type supplementer interface {
	Supplement(ctx context.Context, app model.AppInfo) ([]model.ScreenElement, error)
}

// Orchestrator coordinates cache, walker helper and browser supplement
// into single discovery passes.
type Orchestrator struct {
	apps   platform.Apps
	helper HelperInvoker
	web    supplementer
	cache  *ResultCache
	log    logging.Logger
	newID  func() string
}

// NewOrchestrator wires the pipeline from a platform provider.
func NewOrchestrator(p *platform.Provider, opts Options, log logging.Logger) *Orchestrator {
	o := &Orchestrator{
		apps: p.Apps,
		helper: &SubprocessHelper{
			Path:        opts.HelperPath,
			Settle:      opts.Settle,
			MaxDepth:    opts.MaxDepth,
			MaxElements: opts.MaxElements,
			Timeout:     opts.HelperTimeout,
		},
		cache: NewResultCache(opts.CacheTTL),
		log:   log,
		newID: uuid.NewString,
	}
	if opts.Supplement && p.ScriptRunner != nil {
		o.web = browser.NewSupplementer(p.ScriptRunner)
	}
	return o
}

// Discover resolves the target app and runs one discovery pass. The
// native walk (or its cached result) and the browser supplement run
// concurrently; web elements are appended after native ones so
// numbering stays deterministic. Modal surfaces suppress the
// supplement.
func (o *Orchestrator) Discover(ctx context.Context, target platform.Target) (Activation, error) {
	app, err := o.resolveTarget(target)
	if err != nil {
		return Activation{}, err
	}

	act := Activation{ID: o.newID(), App: app}
	log := o.log.With(logging.String("activation", act.ID), logging.Int("pid", app.PID))

	var (
		webEls []model.ScreenElement
		webErr error
		webCh  chan struct{}
	)
	if o.web != nil {
		webCh = make(chan struct{})
		go func() {
			defer close(webCh)
			webEls, webErr = o.web.Supplement(ctx, app)
		}()
	}

	native, hit := o.cache.Get(app.PID)
	if !hit {
		out, err := o.helper.Invoke(ctx, app.PID)
		if err != nil {
			if webCh != nil {
				<-webCh
			}
			log.Warn("native walk failed", logging.Error(err))
			return Activation{}, ErrNoElements
		}
		native = resultFromOutput(out)
		o.cache.Put(app.PID, native)
	}
	act.FromCache = hit
	act.IsModal = native.IsModal

	if webCh != nil {
		<-webCh
	}

	act.Elements = native.Elements
	switch {
	case native.IsModal:
		// A menu, sheet or dialog owns the screen; page content under
		// it must not receive hints.
	case webErr != nil:
		log.Warn("browser supplement failed", logging.Error(webErr))
	default:
		act.Elements = append(act.Elements, webEls...)
	}

	if len(act.Elements) == 0 {
		return Activation{}, ErrNoElements
	}

	log.Debug("discovery complete",
		logging.Int("elements", len(act.Elements)),
		logging.Bool("modal", act.IsModal),
		logging.Bool("cached", act.FromCache))
	return act, nil
}

// Prefetch warms the cache for pid on a detached goroutine. The result
// lands only in the cache; errors are discarded.
func (o *Orchestrator) Prefetch(pid int) {
	go func() {
		_ = o.PrefetchWait(context.Background(), pid)
	}()
}

// PrefetchWait runs one native walk for pid and stores the result.
func (o *Orchestrator) PrefetchWait(ctx context.Context, pid int) error {
	out, err := o.helper.Invoke(ctx, pid)
	if err != nil {
		o.log.Debug("prefetch failed", logging.Int("pid", pid), logging.Error(err))
		return err
	}
	o.cache.Put(pid, resultFromOutput(out))
	return nil
}

// Invalidate drops the cached result for pid.
func (o *Orchestrator) Invalidate(pid int) {
	o.cache.Invalidate(pid)
}

// InvalidateAll clears the cache.
func (o *Orchestrator) InvalidateAll() {
	o.cache.InvalidateAll()
}

// SetCacheTTL changes the cache ttl at runtime.
func (o *Orchestrator) SetCacheTTL(ttl time.Duration) {
	o.cache.SetTTL(ttl)
}

func (o *Orchestrator) resolveTarget(t platform.Target) (model.AppInfo, error) {
	switch {
	case t.App != "":
		return o.apps.Find(t.App)
	case t.PID != 0:
		return o.apps.ByPID(t.PID)
	default:
		return o.apps.Frontmost()
	}
}

func resultFromOutput(out walker.Output) model.DiscoveryResult {
	elements := make([]model.ScreenElement, 0, len(out.Elements))
	for _, r := range out.Elements {
		elements = append(elements, model.FromRaw(r))
	}
	return model.DiscoveryResult{Elements: elements, IsModal: out.IsModal}
}
