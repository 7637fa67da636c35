package model

// WindowBounds is a window rectangle in screen coordinates, used as a
// filter during the native walk.
type WindowBounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether the given rectangle overlaps the bounds.
// Partial overlap is enough: an element poking one pixel into the window
// is kept so that partially offscreen controls remain reachable.
// Rectangles that only touch an edge share no area and are rejected.
func (b WindowBounds) Contains(x, y, w, h float64) bool {
	return x < b.X+b.Width && x+w > b.X &&
		y < b.Y+b.Height && y+h > b.Y
}
