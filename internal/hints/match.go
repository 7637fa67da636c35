package hints

import "strings"

// MatchKind classifies how a typed buffer relates to one hint label.
type MatchKind int

const (
	// MatchNone means the buffer neither equals nor prefixes the hint.
	MatchNone MatchKind = iota
	// MatchPartial means the buffer is a strict prefix of the hint.
	MatchPartial
	// MatchExact means the buffer equals the hint.
	MatchExact
)

// Match compares a typed buffer against a hint label, case-insensitively.
func Match(hint, input string) MatchKind {
	h := strings.ToUpper(hint)
	in := strings.ToUpper(input)
	if h == in {
		return MatchExact
	}
	if strings.HasPrefix(h, in) {
		return MatchPartial
	}
	return MatchNone
}
