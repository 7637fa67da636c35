package walker

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		want    Args
		wantErr bool
	}{
		{"no args", nil, Args{Settle: DefaultSettleDelay}, false},
		{"pid only", []string{"4242"}, Args{PID: 4242, Settle: DefaultSettleDelay}, false},
		{"explicit zero settle", []string{"4242", "0"}, Args{PID: 4242}, false},
		{"full", []string{"4242", "25", "8", "200"}, Args{
			PID:    4242,
			Settle: 25 * time.Millisecond,
			Limits: Limits{MaxDepth: 8, MaxElements: 200},
		}, false},
		{"garbage", []string{"abc"}, Args{}, true},
		{"negative", []string{"-4"}, Args{}, true},
		{"too many", []string{"1", "2", "3", "4", "5"}, Args{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.argv)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseArgs(%v) = %+v, want %+v", tt.argv, got, tt.want)
			}
		})
	}
}

func TestRunWritesSingleJSONLine(t *testing.T) {
	win := &fakeNode{role: "AXWindow", frame: []float64{0, 0, 500, 400}, kids: []*fakeNode{
		button("OK", 10, 10, 80, 30),
	}}
	app := &fakeNode{role: "AXApplication", rels: map[string][]*fakeNode{AttrFocusedWindow: {win}}}

	var buf bytes.Buffer
	if err := Run(&buf, &fakeTree{app: app}, 0, Limits{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	line := buf.String()
	if !strings.HasSuffix(line, "\n") {
		t.Error("output must end with a newline")
	}
	if strings.Count(line, "\n") != 1 {
		t.Errorf("expected exactly one line, got %q", line)
	}
	if !strings.Contains(line, `"is_modal":false`) {
		t.Errorf("is_modal must be present even when false, got %q", line)
	}

	var out Output
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(out.Elements) != 1 || out.Elements[0].Title != "OK" {
		t.Errorf("decoded %+v, want the OK button", out)
	}
	if out.Elements[0].Role != "AXButton" {
		t.Errorf("role = %q, want AXButton", out.Elements[0].Role)
	}
}

func TestRunEmptyResultKeepsElementsArray(t *testing.T) {
	app := &fakeNode{role: "AXApplication"}

	var buf bytes.Buffer
	if err := Run(&buf, &fakeTree{app: app}, 0, Limits{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"elements":[]`) {
		t.Errorf("empty result must serialize elements as [], got %q", buf.String())
	}
}

func TestRunQueryError(t *testing.T) {
	var buf bytes.Buffer
	err := Run(&buf, &fakeTree{appErr: errors.New("denied")}, 0, Limits{})
	if err == nil {
		t.Fatal("expected an error")
	}
	if buf.Len() != 0 {
		t.Errorf("nothing must be written on failure, got %q", buf.String())
	}
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	WriteError(&buf, errors.New(`boom "quoted"`))

	var msg struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(buf.Bytes(), &msg); err != nil {
		t.Fatalf("stderr payload is not valid JSON: %v", err)
	}
	if msg.Error != `boom "quoted"` {
		t.Errorf("error message = %q", msg.Error)
	}
}
