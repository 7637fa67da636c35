package output

import (
	"github.com/keyclick/keyclick/internal/model"
)

// ElementsResult is the top-level output of the `elements` command.
type ElementsResult struct {
	App        string                `yaml:"app,omitempty"        json:"app,omitempty"`
	BundleID   string                `yaml:"bundle_id,omitempty"  json:"bundle_id,omitempty"`
	PID        int                   `yaml:"pid,omitempty"        json:"pid,omitempty"`
	Activation string                `yaml:"activation"           json:"activation"`
	Cached     bool                  `yaml:"cached,omitempty"     json:"cached,omitempty"`
	Modal      bool                  `yaml:"modal,omitempty"      json:"modal,omitempty"`
	TS         int64                 `yaml:"ts"                   json:"ts"`
	Elements   []model.ScreenElement `yaml:"elements"             json:"elements"`
}

// HintsResult is the top-level output of the `hints` command: the same
// header as ElementsResult with hint labels assigned.
type HintsResult struct {
	App        string                `yaml:"app,omitempty"        json:"app,omitempty"`
	BundleID   string                `yaml:"bundle_id,omitempty"  json:"bundle_id,omitempty"`
	PID        int                   `yaml:"pid,omitempty"        json:"pid,omitempty"`
	Activation string                `yaml:"activation"           json:"activation"`
	Cached     bool                  `yaml:"cached,omitempty"     json:"cached,omitempty"`
	Modal      bool                  `yaml:"modal,omitempty"      json:"modal,omitempty"`
	TS         int64                 `yaml:"ts"                   json:"ts"`
	Hints      []model.HintedElement `yaml:"hints"                json:"hints"`
}

// SelectResult is the top-level output of the `select` command. Element,
// X and Y are set only when the input resolved to a match.
type SelectResult struct {
	App     string               `yaml:"app,omitempty"     json:"app,omitempty"`
	PID     int                  `yaml:"pid,omitempty"     json:"pid,omitempty"`
	Input   string               `yaml:"input"             json:"input"`
	State   string               `yaml:"state"             json:"state"`
	Action  string               `yaml:"action,omitempty"  json:"action,omitempty"`
	Element *model.HintedElement `yaml:"element,omitempty" json:"element,omitempty"`
	X       int                  `yaml:"x,omitempty"       json:"x,omitempty"`
	Y       int                  `yaml:"y,omitempty"       json:"y,omitempty"`
	// Remaining is the count of hints the buffer still reaches when the
	// input ended on a partial prefix.
	Remaining int `yaml:"remaining,omitempty" json:"remaining,omitempty"`
}

// Selection states reported by SelectResult.
const (
	StateClicked = "clicked"
	StatePartial = "partial"
	StateNoMatch = "no_match"
)

// AppResult reports one running application.
type AppResult struct {
	Name     string `yaml:"name"                json:"name"`
	BundleID string `yaml:"bundle_id,omitempty" json:"bundle_id,omitempty"`
	PID      int    `yaml:"pid"                 json:"pid"`
}

// PreviewResult is the top-level output of the `preview` command.
type PreviewResult struct {
	Path  string `yaml:"path"  json:"path"`
	Hints int    `yaml:"hints" json:"hints"`
}
