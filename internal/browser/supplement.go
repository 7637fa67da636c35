package browser

import (
	"context"
	"fmt"

	"github.com/keyclick/keyclick/internal/model"
	"github.com/keyclick/keyclick/internal/platform"
)

// Supplementer queries web clickables for recognized browsers.
type Supplementer struct {
	runner platform.ScriptRunner
}

// NewSupplementer creates a supplementer backed by the given bridge.
func NewSupplementer(runner platform.ScriptRunner) *Supplementer {
	return &Supplementer{runner: runner}
}

// Supplement returns the frontmost page's clickable elements in screen
// coordinates. Apps that are not scripted browsers yield (nil, nil);
// this includes Safari, whose web content already surfaces through the
// native walk.
func (s *Supplementer) Supplement(ctx context.Context, app model.AppInfo) ([]model.ScreenElement, error) {
	b, ok := Detect(app.BundleID)
	if !ok || !b.Scripted {
		return nil, nil
	}

	out, err := s.runner.RunScript(ctx, buildCombinedScript(b.Name, getAllJS))
	if err != nil {
		return nil, fmt.Errorf("browser query for %s: %w", b.Name, err)
	}

	winX, winY, winHeight, payload, err := parseCombined(out)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}

	// The page reports viewport coordinates. Shift by the window origin,
	// plus the chrome height (tabs, toolbars) on y.
	chromeHeight := winHeight - payload.ViewportHeight

	elements := make([]model.ScreenElement, 0, len(payload.Elements))
	for _, c := range payload.Elements {
		elements = append(elements, model.ScreenElement{
			X:      c.X + winX,
			Y:      c.Y + winY + chromeHeight,
			Width:  c.Width,
			Height: c.Height,
			Role:   model.MapWebTag(c.Tag),
			Label:  c.Text,
			Origin: model.OriginWeb,
		})
	}
	return elements, nil
}
