package hints

import (
	"errors"
	"strings"
	"sync"
	"unicode"

	"github.com/keyclick/keyclick/internal/model"
)

// ErrNoElements is returned when activation is attempted with nothing to
// select; the session stays inactive.
var ErrNoElements = errors.New("no clickable elements")

// Phase is the session's current mode.
type Phase int

const (
	// PhaseInactive means no selection is in progress.
	PhaseInactive Phase = iota
	// PhaseShowingHints means hint labels are live and keystrokes are
	// matched against them.
	PhaseShowingHints
	// PhaseSearching means free-text filtering by label/role is live.
	PhaseSearching
)

// EventKind classifies the session's reaction to one input event.
type EventKind int

const (
	// EventIgnored means the input caused no state change.
	EventIgnored EventKind = iota
	// EventPartial means the buffer is a live prefix of one or more hints.
	EventPartial
	// EventMatch means a hint was fully typed; the session is over.
	EventMatch
	// EventWrongSecondKey means the second character was mistyped once and
	// forgiven; the buffer rolled back to the first character.
	EventWrongSecondKey
	// EventNoMatch means the input cannot reach any hint; session over.
	EventNoMatch
	// EventCancelled means the session ended without a selection.
	EventCancelled
	// EventActionChanged means an action-switch key changed the pending
	// click action.
	EventActionChanged
	// EventSearchChanged means the search query and its match count moved.
	EventSearchChanged
)

// Event is the session's reaction to one input.
type Event struct {
	Kind      EventKind
	Element   *model.HintedElement // set on EventMatch
	Action    Action               // effective action for Match/ActionChanged
	Remaining int                  // live candidates after this input
}

// Session is the hint-selection state machine. One instance exists per
// keyboard-capture context. All methods are safe for concurrent use; the
// lock is never held across anything blocking.
type Session struct {
	mu             sync.Mutex
	phase          Phase
	elements       []model.HintedElement
	buffer         string
	query          string
	action         Action
	wrongSecondKey bool
}

// NewSession returns an inactive session.
func NewSession() *Session {
	return &Session{phase: PhaseInactive}
}

// Activate installs a freshly hinted element set and enters ShowingHints.
// The pending action resets to a plain click and the one-shot retry flag
// clears. An empty element set aborts activation.
func (s *Session) Activate(elements []model.HintedElement) error {
	if len(elements) == 0 {
		return ErrNoElements
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseShowingHints
	s.elements = elements
	s.buffer = ""
	s.query = ""
	s.action = ActionClick
	s.wrongSecondKey = false
	return nil
}

// Deactivate resets the session to Inactive and drops the element set.
func (s *Session) Deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Session) reset() {
	s.phase = PhaseInactive
	s.elements = nil
	s.buffer = ""
	s.query = ""
	s.action = ActionClick
	s.wrongSecondKey = false
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Buffer returns the current hint input buffer.
func (s *Session) Buffer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

// Query returns the current search query.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// PendingAction returns the click action a match will perform.
func (s *Session) PendingAction() Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.action
}

// SetAction overrides the pending click action. Action-switch keys typed
// afterwards still change it.
func (s *Session) SetAction(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.action = a
}

// Feed types input through the session one character at a time and
// returns the last event, stopping early on a terminal match or miss.
func Feed(s *Session, input string) Event {
	var last Event
	for _, ch := range input {
		last = s.HandleChar(ch, false)
		if last.Kind == EventMatch || last.Kind == EventNoMatch {
			break
		}
	}
	return last
}

// HandleChar consumes one typed character. shift reports whether the shift
// modifier was held; on a match with a plain pending action it upgrades the
// click to a right click.
func (s *Session) HandleChar(ch rune, shift bool) Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseShowingHints:
		if !shift {
			if action, ok := actionKeys[unicode.ToLower(ch)]; ok {
				s.action = action
				return Event{Kind: EventActionChanged, Action: action, Remaining: s.liveCount()}
			}
		}
		if !unicode.IsLetter(ch) && !unicode.IsDigit(ch) {
			return Event{Kind: EventIgnored, Remaining: s.liveCount()}
		}
		return s.consumeHintChar(ch, shift)
	case PhaseSearching:
		if !unicode.IsPrint(ch) {
			return Event{Kind: EventIgnored, Remaining: s.liveCount()}
		}
		s.query += strings.ToLower(string(ch))
		return Event{Kind: EventSearchChanged, Remaining: s.liveCount()}
	default:
		return Event{Kind: EventIgnored}
	}
}

// consumeHintChar implements the matching rules for one buffered character.
// Caller holds the lock and has already classified ch as alphanumeric.
func (s *Session) consumeHintChar(ch rune, shift bool) Event {
	prev := s.buffer
	next := prev + strings.ToUpper(string(ch))

	var exact *model.HintedElement
	partial := 0
	for i := range s.elements {
		switch Match(s.elements[i].Hint, next) {
		case MatchExact:
			exact = &s.elements[i]
		case MatchPartial:
			partial++
		}
	}

	// Exact equality beats prefix extension: with A and AB both assigned,
	// typing A selects the single-character element immediately.
	if exact != nil {
		el := *exact
		action := s.action
		if shift && action == ActionClick {
			action = ActionRight
		}
		s.reset()
		return Event{Kind: EventMatch, Element: &el, Action: action, Remaining: 0}
	}

	if partial > 0 {
		s.buffer = next
		return Event{Kind: EventPartial, Remaining: partial}
	}

	// Retry exception: a single mistyped second character is forgiven once
	// per activation. The buffer rolls back to the first character and the
	// session stays live so the user can try again.
	if len(prev) == 1 && !s.wrongSecondKey && s.prefixCount(prev) > 0 {
		s.wrongSecondKey = true
		return Event{Kind: EventWrongSecondKey, Remaining: s.prefixCount(prev)}
	}

	s.reset()
	return Event{Kind: EventNoMatch}
}

// prefixCount reports how many hints the given buffer still reaches,
// counting exact hits as reachable. Caller holds the lock.
func (s *Session) prefixCount(buffer string) int {
	n := 0
	for i := range s.elements {
		if Match(s.elements[i].Hint, buffer) != MatchNone {
			n++
		}
	}
	return n
}

// liveCount is prefixCount for the active buffer or query. Caller holds
// the lock.
func (s *Session) liveCount() int {
	switch s.phase {
	case PhaseShowingHints:
		return s.prefixCount(s.buffer)
	case PhaseSearching:
		return len(s.searchMatches())
	default:
		return 0
	}
}

// HandleBackspace removes the last character from whichever buffer is
// active without otherwise changing state.
func (s *Session) HandleBackspace() Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.phase {
	case PhaseShowingHints:
		if s.buffer != "" {
			s.buffer = s.buffer[:len(s.buffer)-1]
		}
		return Event{Kind: EventPartial, Remaining: s.prefixCount(s.buffer)}
	case PhaseSearching:
		if s.query != "" {
			s.query = s.query[:len(s.query)-1]
		}
		return Event{Kind: EventSearchChanged, Remaining: len(s.searchMatches())}
	default:
		return Event{Kind: EventIgnored}
	}
}

// HandleEscape cancels the session unconditionally.
func (s *Session) HandleEscape() Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseInactive {
		return Event{Kind: EventIgnored}
	}
	s.reset()
	return Event{Kind: EventCancelled}
}

// HandleMouse deactivates the session in response to a raw mouse click or
// scroll: the user is assumed to have changed intent.
func (s *Session) HandleMouse() Event {
	return s.HandleEscape()
}

// HandleFocusChange deactivates the session when the frontmost application
// changes underneath it.
func (s *Session) HandleFocusChange() Event {
	return s.HandleEscape()
}

// EnterSearch switches from ShowingHints to free-text filtering.
func (s *Session) EnterSearch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseInactive {
		return errors.New("session not active")
	}
	s.phase = PhaseSearching
	s.query = ""
	return nil
}

// ExitSearch returns from Searching to ShowingHints with a cleared buffer.
func (s *Session) ExitSearch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseSearching {
		return errors.New("session not searching")
	}
	s.phase = PhaseShowingHints
	s.buffer = ""
	s.query = ""
	return nil
}

// SetQuery replaces the search query wholesale, for presenters that own a
// text field rather than forwarding keystrokes. Returns the match count.
func (s *Session) SetQuery(query string) Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseSearching {
		return Event{Kind: EventIgnored}
	}
	s.query = strings.ToLower(query)
	return Event{Kind: EventSearchChanged, Remaining: len(s.searchMatches())}
}

// Elements returns the full hinted element set for the activation.
func (s *Session) Elements() []model.HintedElement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.HintedElement, len(s.elements))
	copy(out, s.elements)
	return out
}

// FilteredElements returns the elements consistent with the current buffer
// or query, for the presenter to re-render after a Partial or search edit.
func (s *Session) FilteredElements() []model.HintedElement {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.phase {
	case PhaseShowingHints:
		if s.buffer == "" {
			out := make([]model.HintedElement, len(s.elements))
			copy(out, s.elements)
			return out
		}
		var out []model.HintedElement
		for i := range s.elements {
			if Match(s.elements[i].Hint, s.buffer) != MatchNone {
				out = append(out, s.elements[i])
			}
		}
		return out
	case PhaseSearching:
		return s.searchMatches()
	default:
		return nil
	}
}

// searchMatches filters by case-insensitive substring on label or role.
// Caller holds the lock.
func (s *Session) searchMatches() []model.HintedElement {
	var out []model.HintedElement
	for i := range s.elements {
		el := &s.elements[i]
		if strings.Contains(strings.ToLower(el.Element.Label), s.query) ||
			strings.Contains(strings.ToLower(el.Element.Role), s.query) {
			out = append(out, *el)
		}
	}
	return out
}
