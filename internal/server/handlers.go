package server

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/keyclick/keyclick/internal/hints"
	"github.com/keyclick/keyclick/internal/output"
	"github.com/keyclick/keyclick/internal/platform"
)

// resultToText serializes a result envelope to YAML for an MCP response.
func resultToText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}

func (s *Server) handleDiscoverElements(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	app := stringParam(params, "app", "")
	pid := intParam(params, "pid", 0)
	fresh := boolParam(params, "fresh", false)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	if fresh {
		if pid > 0 {
			s.orch.Invalidate(pid)
		} else {
			s.orch.InvalidateAll()
		}
	}

	act, err := s.orch.Discover(ctx, platform.Target{App: app, PID: pid})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := output.HintsResult{
		App:        act.App.Name,
		BundleID:   act.App.BundleID,
		PID:        act.App.PID,
		Activation: act.ID,
		Cached:     act.FromCache,
		Modal:      act.IsModal,
		TS:         time.Now().Unix(),
		Hints:      hints.Label(act.Elements, s.alphabet),
	}
	return mcp.NewToolResultText(resultToText(res)), nil
}

func (s *Server) handleSelectElement(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	input := stringParam(params, "input", "")
	actionStr := stringParam(params, "action", "")
	app := stringParam(params, "app", "")
	pid := intParam(params, "pid", 0)

	if input == "" {
		return mcp.NewToolResultError("input parameter is required"), nil
	}
	action, err := hints.ParseAction(actionStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	act, err := s.orch.Discover(ctx, platform.Target{App: app, PID: pid})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	session := hints.NewSession()
	if err := session.Activate(hints.Label(act.Elements, s.alphabet)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	session.SetAction(action)

	last := hints.Feed(session, input)

	res := output.SelectResult{
		App:   act.App.Name,
		PID:   act.App.PID,
		Input: input,
	}

	switch last.Kind {
	case hints.EventMatch:
		el := last.Element
		if s.provider.Inputter == nil {
			return mcp.NewToolResultError("input synthesis not available on this platform"), nil
		}
		if err := s.dispatcher.Click(el.Element, last.Action); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		// The click just changed the UI under the cached snapshot.
		s.orch.Invalidate(act.App.PID)
		cx, cy := el.Element.Center()
		res.State = output.StateClicked
		res.Action = last.Action.String()
		res.Element = el
		res.X = cx
		res.Y = cy
	case hints.EventPartial, hints.EventWrongSecondKey, hints.EventActionChanged:
		res.State = output.StatePartial
		res.Action = session.PendingAction().String()
		res.Remaining = last.Remaining
	default:
		res.State = output.StateNoMatch
	}
	return mcp.NewToolResultText(resultToText(res)), nil
}

func (s *Server) handleInvalidateCache(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pid := intParam(request.GetArguments(), "pid", 0)
	if pid > 0 {
		s.orch.Invalidate(pid)
		return mcp.NewToolResultText(fmt.Sprintf("cache invalidated for pid %d", pid)), nil
	}
	s.orch.InvalidateAll()
	return mcp.NewToolResultText("cache invalidated"), nil
}

func (s *Server) handleFrontmostApp(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	if s.provider.Apps == nil {
		return mcp.NewToolResultError("app lookup not available on this platform"), nil
	}
	info, err := s.provider.Apps.Frontmost()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res := output.AppResult{Name: info.Name, BundleID: info.BundleID, PID: info.PID}
	return mcp.NewToolResultText(resultToText(res)), nil
}

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		// Handle numeric values that clients may send for string fields
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}
