package walker

import (
	"errors"
	"fmt"
	"testing"

	"github.com/keyclick/keyclick/internal/model"
)

var errAttrMissing = errors.New("attribute unavailable")

// fakeNode is an in-memory Node for exercising traversal logic.
type fakeNode struct {
	role    string
	roleErr bool
	attrs   map[string]string
	frame   []float64 // x, y, w, h; nil reads as missing
	actions []string
	kids    []*fakeNode
	rels    map[string][]*fakeNode // element attributes other than AXChildren
}

func (n *fakeNode) Attr(name string) (string, error) {
	if name == AttrRole {
		if n.roleErr {
			return "", errAttrMissing
		}
		return n.role, nil
	}
	if v, ok := n.attrs[name]; ok {
		return v, nil
	}
	return "", errAttrMissing
}

func (n *fakeNode) Frame() (float64, float64, float64, float64, error) {
	if n.frame == nil {
		return 0, 0, 0, 0, errAttrMissing
	}
	return n.frame[0], n.frame[1], n.frame[2], n.frame[3], nil
}

func (n *fakeNode) Child(name string) (Node, error) {
	if rel := n.rels[name]; len(rel) > 0 {
		return rel[0], nil
	}
	return nil, errAttrMissing
}

func (n *fakeNode) Children(name string, max int) ([]Node, error) {
	var list []*fakeNode
	if name == AttrChildren {
		list = n.kids
	} else {
		var ok bool
		list, ok = n.rels[name]
		if !ok {
			return nil, errAttrMissing
		}
	}
	if len(list) > max {
		list = list[:max]
	}
	out := make([]Node, len(list))
	for i, c := range list {
		out[i] = c
	}
	return out, nil
}

func (n *fakeNode) Actions(max int) ([]string, error) {
	if n.actions == nil {
		return nil, errAttrMissing
	}
	if len(n.actions) > max {
		return n.actions[:max], nil
	}
	return n.actions, nil
}

type fakeTree struct {
	app     *fakeNode
	focused *fakeNode
	appErr  error
}

func (t *fakeTree) App() (Node, error) {
	if t.appErr != nil {
		return nil, t.appErr
	}
	return t.app, nil
}

func (t *fakeTree) SystemFocused() (Node, error) {
	if t.focused == nil {
		return nil, errAttrMissing
	}
	return t.focused, nil
}

func button(title string, x, y, w, h float64) *fakeNode {
	return &fakeNode{
		role:  "AXButton",
		attrs: map[string]string{AttrTitle: title},
		frame: []float64{x, y, w, h},
	}
}

func group(kids ...*fakeNode) *fakeNode {
	return &fakeNode{role: "AXGroup", frame: []float64{0, 0, 1200, 800}, kids: kids}
}

func window(kids ...*fakeNode) *fakeNode {
	return &fakeNode{role: "AXWindow", frame: []float64{0, 0, 1200, 800}, kids: kids}
}

func titles(elements []model.RawElement) []string {
	out := make([]string, len(elements))
	for i, el := range elements {
		out[i] = el.Title
	}
	return out
}

func TestCollectEmitsClickableLeaves(t *testing.T) {
	root := window(group(
		button("OK", 10, 10, 80, 30),
		&fakeNode{role: "AXLink", attrs: map[string]string{AttrTitle: "Docs"}, frame: []float64{10, 50, 60, 20}},
	))
	got := Collect(root, nil, Limits{})
	if len(got) != 2 {
		t.Fatalf("expected 2 elements, got %d: %v", len(got), titles(got))
	}
	if got[0].Role != "AXButton" || got[0].Title != "OK" {
		t.Errorf("first element = %+v, want the OK button", got[0])
	}
	if got[0].X != 10 || got[0].Y != 10 || got[0].Width != 80 || got[0].Height != 30 {
		t.Errorf("unexpected frame: %+v", got[0])
	}
	if got[1].Role != "AXLink" || got[1].Title != "Docs" {
		t.Errorf("second element = %+v, want the Docs link", got[1])
	}
}

func TestCollectSkipsEmptyAndUnknownRoles(t *testing.T) {
	for _, role := range []string{"", model.UnknownRole} {
		root := &fakeNode{
			role:  role,
			frame: []float64{0, 0, 400, 300},
			kids:  []*fakeNode{button("Hidden", 10, 10, 50, 20)},
		}
		if got := Collect(root, nil, Limits{}); len(got) != 0 {
			t.Errorf("role %q: expected subtree to be skipped, got %v", role, titles(got))
		}
	}
}

func TestCollectVisibility(t *testing.T) {
	tests := []struct {
		name  string
		frame []float64
		want  bool
	}{
		{"normal", []float64{10, 10, 50, 20}, true},
		{"too narrow", []float64{10, 10, 3, 20}, false},
		{"too short", []float64{10, 10, 50, 3}, false},
		{"minimum size", []float64{10, 10, 4, 4}, true},
		{"offscreen sentinel", []float64{-10001, 10, 50, 20}, false},
		{"sane negative", []float64{-10000, -10000, 50, 20}, true},
		{"no frame", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := &fakeNode{role: "AXButton", attrs: map[string]string{AttrTitle: "b"}, frame: tt.frame}
			got := Collect(el, nil, Limits{})
			if emitted := len(got) == 1; emitted != tt.want {
				t.Errorf("frame %v: emitted = %v, want %v", tt.frame, emitted, tt.want)
			}
		})
	}
}

func TestCollectWindowBoundsFilter(t *testing.T) {
	bounds := &model.WindowBounds{X: 0, Y: 0, Width: 100, Height: 100}
	tests := []struct {
		name  string
		frame []float64
		want  bool
	}{
		{"inside", []float64{10, 10, 20, 20}, true},
		{"straddling edge", []float64{90, 90, 20, 20}, true},
		{"outside", []float64{150, 150, 20, 20}, false},
		{"touching edge", []float64{100, 10, 20, 20}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := &fakeNode{role: "AXButton", attrs: map[string]string{AttrTitle: "b"}, frame: tt.frame}
			got := Collect(el, bounds, Limits{})
			if emitted := len(got) == 1; emitted != tt.want {
				t.Errorf("frame %v against %+v: emitted = %v, want %v", tt.frame, *bounds, emitted, tt.want)
			}
		})
	}
}

func TestCollectContainersNotEmitted(t *testing.T) {
	root := window(
		&fakeNode{role: "AXScrollArea", frame: []float64{0, 0, 600, 400}, kids: []*fakeNode{
			button("Scrolled", 10, 10, 80, 30),
		}},
	)
	got := Collect(root, nil, Limits{})
	if len(got) != 1 || got[0].Title != "Scrolled" {
		t.Fatalf("expected only the button, got %v", titles(got))
	}
}

func TestCollectDepthLimit(t *testing.T) {
	root := window(group(group(button("Deep", 10, 10, 50, 20))))
	if got := Collect(root, nil, Limits{MaxDepth: 2}); len(got) != 0 {
		t.Errorf("depth 2: expected nothing, got %v", titles(got))
	}
	if got := Collect(root, nil, Limits{MaxDepth: 3}); len(got) != 1 {
		t.Errorf("depth 3: expected the button, got %v", titles(got))
	}
}

func TestCollectMaxElements(t *testing.T) {
	var kids []*fakeNode
	for i := 0; i < 5; i++ {
		kids = append(kids, button(fmt.Sprintf("b%d", i), float64(10*i), 10, 50, 20))
	}
	got := Collect(window(kids...), nil, Limits{MaxElements: 3})
	if len(got) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(got))
	}
	for i, want := range []string{"b0", "b1", "b2"} {
		if got[i].Title != want {
			t.Errorf("element %d = %q, want %q", i, got[i].Title, want)
		}
	}
}

func TestCollectChildScanCap(t *testing.T) {
	var kids []*fakeNode
	for i := 0; i < 120; i++ {
		kids = append(kids, button(fmt.Sprintf("b%d", i), float64(i), 10, 50, 20))
	}
	got := Collect(window(kids...), nil, Limits{})
	if len(got) != maxChildrenPerNode {
		t.Errorf("expected %d elements, got %d", maxChildrenPerNode, len(got))
	}
}

func TestCollectTitleChain(t *testing.T) {
	tests := []struct {
		name  string
		attrs map[string]string
		want  string
	}{
		{"title", map[string]string{AttrTitle: "T"}, "T"},
		{"description fallback", map[string]string{AttrDescription: "D"}, "D"},
		{"value fallback", map[string]string{AttrValue: "V"}, "V"},
		{"label fallback", map[string]string{AttrLabel: "L"}, "L"},
		{"help fallback", map[string]string{AttrHelp: "H"}, "H"},
		{"empty title falls through", map[string]string{AttrTitle: "", AttrDescription: "D"}, "D"},
		{"nothing", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := &fakeNode{role: "AXButton", attrs: tt.attrs, frame: []float64{10, 10, 50, 20}}
			got := Collect(el, nil, Limits{})
			if len(got) != 1 {
				t.Fatalf("expected 1 element, got %d", len(got))
			}
			if got[0].Title != tt.want {
				t.Errorf("title = %q, want %q", got[0].Title, tt.want)
			}
		})
	}
}

func TestCollectRowCollapse(t *testing.T) {
	cell := &fakeNode{role: "AXCell", frame: []float64{10, 8, 200, 20}, kids: []*fakeNode{
		{role: "AXStaticText", attrs: map[string]string{AttrValue: "Inbox"}, frame: []float64{12, 10, 80, 16}},
	}}
	row := &fakeNode{role: "AXRow", frame: []float64{10, 8, 400, 24}, kids: []*fakeNode{
		cell,
		button("Trailing", 300, 10, 40, 20),
	}}
	got := Collect(row, nil, Limits{})
	if len(got) != 1 {
		t.Fatalf("expected the row alone, got %v", titles(got))
	}
	if got[0].Role != "AXRow" {
		t.Errorf("role = %q, want AXRow", got[0].Role)
	}
	if got[0].Title != "Inbox" {
		t.Errorf("title = %q, want Inbox", got[0].Title)
	}
}

func TestCollectRowTitleFallbacks(t *testing.T) {
	tests := []struct {
		name string
		kids []*fakeNode
		want string
	}{
		{
			"cell with direct value",
			[]*fakeNode{{role: "AXCell", attrs: map[string]string{AttrValue: "Direct"}}},
			"Direct",
		},
		{
			"cell with static text child",
			[]*fakeNode{{role: "AXCell", kids: []*fakeNode{
				{role: "AXStaticText", attrs: map[string]string{AttrValue: "Nested"}},
			}}},
			"Nested",
		},
		{
			"row level static text title",
			[]*fakeNode{{role: "AXStaticText", attrs: map[string]string{AttrTitle: "Plain"}}},
			"Plain",
		},
		{
			"skips empty cells",
			[]*fakeNode{
				{role: "AXCell"},
				{role: "AXCell", attrs: map[string]string{AttrTitle: "Second"}},
			},
			"Second",
		},
		{
			"no text anywhere",
			[]*fakeNode{{role: "AXCell", kids: []*fakeNode{{role: "AXImage"}}}},
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := &fakeNode{role: "AXRow", frame: []float64{10, 8, 400, 24}, kids: tt.kids}
			got := Collect(row, nil, Limits{})
			if len(got) != 1 {
				t.Fatalf("expected 1 element, got %d", len(got))
			}
			if got[0].Title != tt.want {
				t.Errorf("row title = %q, want %q", got[0].Title, tt.want)
			}
		})
	}
}

func TestCollectRowChildSuppression(t *testing.T) {
	// Cells keep their emission suppressed inside a row, but traversal
	// continues so nested real controls still surface.
	cell := &fakeNode{role: "AXCell", frame: []float64{10, 10, 100, 20}, kids: []*fakeNode{
		button("Act", 20, 12, 40, 16),
	}}

	var suppressed []model.RawElement
	collect(cell, &suppressed, 0, nil, true, Limits{}.withDefaults())
	if len(suppressed) != 1 || suppressed[0].Title != "Act" {
		t.Fatalf("inside row: expected only the button, got %v", titles(suppressed))
	}

	var plain []model.RawElement
	collect(cell, &plain, 0, nil, false, Limits{}.withDefaults())
	if len(plain) != 2 {
		t.Fatalf("outside row: expected cell and button, got %v", titles(plain))
	}
}

func TestHasPressAction(t *testing.T) {
	tests := []struct {
		name    string
		actions []string
		want    bool
	}{
		{"press", []string{"AXPress"}, true},
		{"show menu", []string{"AXScrollToVisible", "AXShowMenu"}, true},
		{"unrelated only", []string{"AXScrollToVisible"}, false},
		{"unavailable", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &fakeNode{role: "AXButton", actions: tt.actions}
			if got := hasPressAction(n); got != tt.want {
				t.Errorf("hasPressAction(%v) = %v, want %v", tt.actions, got, tt.want)
			}
		})
	}
}
