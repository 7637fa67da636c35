package server

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/keyclick/keyclick/internal/discovery"
	"github.com/keyclick/keyclick/internal/hints"
	"github.com/keyclick/keyclick/internal/logging"
	"github.com/keyclick/keyclick/internal/model"
	"github.com/keyclick/keyclick/internal/output"
	"github.com/keyclick/keyclick/internal/platform"
)

type fakeOrch struct {
	act         discovery.Activation
	err         error
	discovers   int
	target      platform.Target
	invalidated []int
	invalidAll  int
}

func (f *fakeOrch) Discover(_ context.Context, target platform.Target) (discovery.Activation, error) {
	f.discovers++
	f.target = target
	if f.err != nil {
		return discovery.Activation{}, f.err
	}
	return f.act, nil
}

func (f *fakeOrch) Invalidate(pid int) { f.invalidated = append(f.invalidated, pid) }
func (f *fakeOrch) InvalidateAll()     { f.invalidAll++ }

type fakeClicker struct {
	el     model.ScreenElement
	action hints.Action
	calls  int
	err    error
}

func (f *fakeClicker) Click(el model.ScreenElement, a hints.Action) error {
	f.calls++
	f.el = el
	f.action = a
	return f.err
}

type fakeInputter struct{}

func (fakeInputter) Click(x, y int, b platform.MouseButton, count int, mods []string) error {
	return nil
}
func (fakeInputter) MoveMouse(x, y int) error { return nil }

type fakeApps struct {
	front model.AppInfo
	err   error
}

func (f *fakeApps) Frontmost() (model.AppInfo, error)  { return f.front, f.err }
func (f *fakeApps) Find(string) (model.AppInfo, error) { return f.front, f.err }
func (f *fakeApps) ByPID(int) (model.AppInfo, error)   { return f.front, f.err }

func activation() discovery.Activation {
	return discovery.Activation{
		ID:  "act-1",
		App: model.AppInfo{Name: "Safari", BundleID: "com.apple.Safari", PID: 42},
		Elements: []model.ScreenElement{
			{X: 10, Y: 20, Width: 40, Height: 20, Role: "btn", Label: "OK", Origin: model.OriginNative},
			{X: 60, Y: 20, Width: 40, Height: 20, Role: "lnk", Label: "Docs", Origin: model.OriginWeb},
		},
	}
}

// Action keys r/c/d/n are consumed before hints, so the test alphabet
// avoids them the way the default configuration does.
func testServer(orch discoverer, click clicker, apps platform.Apps) *Server {
	return &Server{
		provider:   &platform.Provider{Inputter: fakeInputter{}, Apps: apps},
		orch:       orch,
		dispatcher: click,
		alphabet:   "asfg",
		log:        logging.NewNop(),
	}
}

func call(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content[0] is %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

func TestDiscoverElementsReturnsHints(t *testing.T) {
	orch := &fakeOrch{act: activation()}
	s := testServer(orch, &fakeClicker{}, nil)

	res, err := s.handleDiscoverElements(context.Background(), call("discover_elements", map[string]interface{}{"app": "Safari"}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", textOf(t, res))
	}
	if orch.target.App != "Safari" {
		t.Errorf("target app = %q, want Safari", orch.target.App)
	}

	var decoded output.HintsResult
	if err := yaml.Unmarshal([]byte(textOf(t, res)), &decoded); err != nil {
		t.Fatalf("response is not valid YAML: %v", err)
	}
	if decoded.Activation != "act-1" || decoded.PID != 42 {
		t.Errorf("header = %+v, want activation act-1 pid 42", decoded)
	}
	if len(decoded.Hints) != 2 || decoded.Hints[0].Hint != "A" || decoded.Hints[1].Hint != "S" {
		t.Errorf("hints = %+v, want A and S", decoded.Hints)
	}
}

func TestDiscoverElementsFresh(t *testing.T) {
	orch := &fakeOrch{act: activation()}
	s := testServer(orch, &fakeClicker{}, nil)

	s.handleDiscoverElements(context.Background(), call("discover_elements", map[string]interface{}{"fresh": true, "pid": float64(42)}))
	if len(orch.invalidated) != 1 || orch.invalidated[0] != 42 {
		t.Errorf("invalidated = %v, want [42]", orch.invalidated)
	}

	s.handleDiscoverElements(context.Background(), call("discover_elements", map[string]interface{}{"fresh": true}))
	if orch.invalidAll != 1 {
		t.Errorf("invalidateAll calls = %d, want 1", orch.invalidAll)
	}
}

func TestDiscoverElementsError(t *testing.T) {
	orch := &fakeOrch{err: discovery.ErrNoElements}
	s := testServer(orch, &fakeClicker{}, nil)

	res, err := s.handleDiscoverElements(context.Background(), call("discover_elements", nil))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Fatal("expected error result when discovery fails")
	}
}

func TestSelectElementClicks(t *testing.T) {
	orch := &fakeOrch{act: activation()}
	click := &fakeClicker{}
	s := testServer(orch, click, nil)

	res, err := s.handleSelectElement(context.Background(), call("select_element", map[string]interface{}{"input": "s"}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", textOf(t, res))
	}
	if click.calls != 1 {
		t.Fatalf("click calls = %d, want 1", click.calls)
	}
	if click.el.Label != "Docs" {
		t.Errorf("clicked %q, want the second element (hint S)", click.el.Label)
	}
	if click.action != hints.ActionClick {
		t.Errorf("action = %v, want plain click", click.action)
	}
	// The dispatched click invalidates the snapshot it was based on.
	if len(orch.invalidated) != 1 || orch.invalidated[0] != 42 {
		t.Errorf("invalidated = %v, want [42]", orch.invalidated)
	}

	var decoded output.SelectResult
	if err := yaml.Unmarshal([]byte(textOf(t, res)), &decoded); err != nil {
		t.Fatalf("response is not valid YAML: %v", err)
	}
	if decoded.State != output.StateClicked {
		t.Errorf("state = %q, want clicked", decoded.State)
	}
	if decoded.X != 80 || decoded.Y != 30 {
		t.Errorf("click point = (%d, %d), want element center (80, 30)", decoded.X, decoded.Y)
	}
}

func TestSelectElementActionParam(t *testing.T) {
	click := &fakeClicker{}
	s := testServer(&fakeOrch{act: activation()}, click, nil)

	res, err := s.handleSelectElement(context.Background(), call("select_element", map[string]interface{}{"input": "a", "action": "double"}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", textOf(t, res))
	}
	if click.action != hints.ActionDouble {
		t.Errorf("action = %v, want double", click.action)
	}
}

func TestSelectElementActionKeySwitches(t *testing.T) {
	click := &fakeClicker{}
	s := testServer(&fakeOrch{act: activation()}, click, nil)

	// r switches the pending action, then the hint character matches.
	res, err := s.handleSelectElement(context.Background(), call("select_element", map[string]interface{}{"input": "ra"}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", textOf(t, res))
	}
	if click.action != hints.ActionRight {
		t.Errorf("action = %v, want right after r switch", click.action)
	}
}

func TestSelectElementPartialState(t *testing.T) {
	s := testServer(&fakeOrch{act: activation()}, &fakeClicker{}, nil)

	// An action switch alone leaves the session live on all hints.
	res, err := s.handleSelectElement(context.Background(), call("select_element", map[string]interface{}{"input": "r"}))
	if err != nil {
		t.Fatal(err)
	}
	var decoded output.SelectResult
	if err := yaml.Unmarshal([]byte(textOf(t, res)), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.State != output.StatePartial {
		t.Errorf("state = %q, want partial", decoded.State)
	}
	if decoded.Action != "right" {
		t.Errorf("action = %q, want right", decoded.Action)
	}
	if decoded.Remaining != 2 {
		t.Errorf("remaining = %d, want 2", decoded.Remaining)
	}
}

func TestSelectElementNoMatch(t *testing.T) {
	click := &fakeClicker{}
	s := testServer(&fakeOrch{act: activation()}, click, nil)

	res, err := s.handleSelectElement(context.Background(), call("select_element", map[string]interface{}{"input": "x"}))
	if err != nil {
		t.Fatal(err)
	}
	if click.calls != 0 {
		t.Error("no click must be dispatched without a match")
	}
	var decoded output.SelectResult
	if err := yaml.Unmarshal([]byte(textOf(t, res)), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.State != output.StateNoMatch {
		t.Errorf("state = %q, want no_match", decoded.State)
	}
}

func TestSelectElementValidation(t *testing.T) {
	s := testServer(&fakeOrch{act: activation()}, &fakeClicker{}, nil)

	res, _ := s.handleSelectElement(context.Background(), call("select_element", nil))
	if !res.IsError {
		t.Error("missing input must be rejected")
	}

	res, _ = s.handleSelectElement(context.Background(), call("select_element", map[string]interface{}{"input": "a", "action": "triple"}))
	if !res.IsError {
		t.Error("unknown action must be rejected")
	}
}

func TestSelectElementClickFailure(t *testing.T) {
	orch := &fakeOrch{act: activation()}
	s := testServer(orch, &fakeClicker{err: errors.New("event tap refused")}, nil)

	res, err := s.handleSelectElement(context.Background(), call("select_element", map[string]interface{}{"input": "a"}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Fatal("dispatch failure must surface as an error result")
	}
	if len(orch.invalidated) != 0 {
		t.Error("failed dispatch must not invalidate the cache")
	}
}

func TestInvalidateCache(t *testing.T) {
	orch := &fakeOrch{}
	s := testServer(orch, &fakeClicker{}, nil)

	s.handleInvalidateCache(context.Background(), call("invalidate_cache", map[string]interface{}{"pid": float64(7)}))
	if len(orch.invalidated) != 1 || orch.invalidated[0] != 7 {
		t.Errorf("invalidated = %v, want [7]", orch.invalidated)
	}

	s.handleInvalidateCache(context.Background(), call("invalidate_cache", nil))
	if orch.invalidAll != 1 {
		t.Errorf("invalidateAll calls = %d, want 1", orch.invalidAll)
	}
}

func TestFrontmostApp(t *testing.T) {
	apps := &fakeApps{front: model.AppInfo{Name: "Finder", BundleID: "com.apple.finder", PID: 9}}
	s := testServer(&fakeOrch{}, &fakeClicker{}, apps)

	res, err := s.handleFrontmostApp(context.Background(), call("frontmost_app", nil))
	if err != nil {
		t.Fatal(err)
	}
	var decoded output.AppResult
	if err := yaml.Unmarshal([]byte(textOf(t, res)), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Name != "Finder" || decoded.PID != 9 {
		t.Errorf("got %+v, want Finder pid 9", decoded)
	}
}

func TestFrontmostAppUnavailable(t *testing.T) {
	s := testServer(&fakeOrch{}, &fakeClicker{}, nil)
	res, _ := s.handleFrontmostApp(context.Background(), call("frontmost_app", nil))
	if !res.IsError {
		t.Error("nil Apps must produce an error result")
	}
}
