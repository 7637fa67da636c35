package dispatch

import (
	"errors"
	"testing"

	"github.com/keyclick/keyclick/internal/hints"
	"github.com/keyclick/keyclick/internal/logging"
	"github.com/keyclick/keyclick/internal/model"
	"github.com/keyclick/keyclick/internal/platform"
)

type fakeInputter struct {
	x, y      int
	button    platform.MouseButton
	count     int
	modifiers []string
	err       error
	calls     int
}

func (f *fakeInputter) Click(x, y int, button platform.MouseButton, count int, modifiers []string) error {
	f.calls++
	f.x, f.y = x, y
	f.button = button
	f.count = count
	f.modifiers = modifiers
	return f.err
}

func (f *fakeInputter) MoveMouse(x, y int) error { return nil }

func TestClickLandsOnCenter(t *testing.T) {
	in := &fakeInputter{}
	d := NewDispatcher(in, logging.NewNop())

	el := model.ScreenElement{X: 100, Y: 200, Width: 60, Height: 20}
	if err := d.Click(el, hints.ActionClick); err != nil {
		t.Fatalf("Click: %v", err)
	}
	if in.x != 130 || in.y != 210 {
		t.Errorf("click at (%d, %d), want (130, 210)", in.x, in.y)
	}
	if in.button != platform.MouseLeft || in.count != 1 || len(in.modifiers) != 0 {
		t.Errorf("plain click got button=%v count=%d modifiers=%v", in.button, in.count, in.modifiers)
	}
}

func TestClickActionMapping(t *testing.T) {
	tests := []struct {
		action    hints.Action
		button    platform.MouseButton
		count     int
		modifiers []string
	}{
		{hints.ActionClick, platform.MouseLeft, 1, nil},
		{hints.ActionRight, platform.MouseRight, 1, nil},
		{hints.ActionDouble, platform.MouseLeft, 2, nil},
		{hints.ActionCommand, platform.MouseLeft, 1, []string{platform.ModCmd}},
	}
	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			in := &fakeInputter{}
			d := NewDispatcher(in, logging.NewNop())

			el := model.ScreenElement{X: 10, Y: 10, Width: 10, Height: 10}
			if err := d.Click(el, tt.action); err != nil {
				t.Fatalf("Click: %v", err)
			}
			if in.button != tt.button {
				t.Errorf("button = %v, want %v", in.button, tt.button)
			}
			if in.count != tt.count {
				t.Errorf("count = %d, want %d", in.count, tt.count)
			}
			if len(in.modifiers) != len(tt.modifiers) {
				t.Fatalf("modifiers = %v, want %v", in.modifiers, tt.modifiers)
			}
			for i := range tt.modifiers {
				if in.modifiers[i] != tt.modifiers[i] {
					t.Errorf("modifiers = %v, want %v", in.modifiers, tt.modifiers)
				}
			}
		})
	}
}

func TestClickError(t *testing.T) {
	in := &fakeInputter{err: errors.New("event tap rejected")}
	d := NewDispatcher(in, logging.NewNop())

	err := d.Click(model.ScreenElement{Width: 4, Height: 4}, hints.ActionClick)
	if err == nil {
		t.Fatal("expected error from failing inputter")
	}
}
