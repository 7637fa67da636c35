package browser

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// webClickable is one element as reported by the in-page query, in
// viewport coordinates.
type webClickable struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Tag    string  `json:"tag"`
	Text   string  `json:"text"`
}

// queryPayload is the JSON half of the combined script output.
type queryPayload struct {
	ViewportHeight float64        `json:"vh"`
	Elements       []webClickable `json:"els"`
}

// soft reports the bridge's ways of saying "nothing there": an empty
// string, AppleScript's "missing value", or the script's own "null".
func soft(s string) bool {
	return s == "" || s == "null" || s == "missing value"
}

// parseCombined splits "winX,winY,winH|<json>" into window geometry and
// the decoded payload. A soft-absent output (or js half) yields a nil
// payload and no error; a malformed one is an error.
func parseCombined(output string) (winX, winY, winHeight float64, payload *queryPayload, err error) {
	output = strings.TrimSpace(output)
	if soft(output) {
		return 0, 0, 0, nil, nil
	}

	parts := strings.SplitN(output, "|", 2)
	if len(parts) != 2 {
		return 0, 0, 0, nil, fmt.Errorf("invalid combined output format: %q", truncate(output, 200))
	}

	winParts := strings.Split(parts[0], ",")
	if len(winParts) != 3 {
		return 0, 0, 0, nil, fmt.Errorf("invalid window info: %q", parts[0])
	}
	winX, _ = strconv.ParseFloat(strings.TrimSpace(winParts[0]), 64)
	winY, _ = strconv.ParseFloat(strings.TrimSpace(winParts[1]), 64)
	winHeight, _ = strconv.ParseFloat(strings.TrimSpace(winParts[2]), 64)

	jsResult := strings.TrimSpace(parts[1])
	if soft(jsResult) {
		return winX, winY, winHeight, nil, nil
	}

	var p queryPayload
	if err := json.Unmarshal([]byte(jsResult), &p); err != nil {
		return 0, 0, 0, nil, fmt.Errorf("parse clickables payload: %w (output: %q)", err, truncate(jsResult, 200))
	}
	return winX, winY, winHeight, &p, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
