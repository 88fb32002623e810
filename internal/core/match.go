package core

import "time"

// MatchResult is the outcome of pairing an item with a slot.
type MatchResult int

const (
	MatchPlaced      MatchResult = iota // Item belongs here and was placed
	MatchAlready                        // Slot was already filled by its item
	MatchWrong                          // Item does not belong here; error flag raised
	MatchNoSelection                    // Tap without a selected item
	MatchUnknownSlot                    // Slot is not part of this board
)

// String returns a human-readable name for the result.
func (r MatchResult) String() string {
	switch r {
	case MatchPlaced:
		return "Placed"
	case MatchAlready:
		return "Already"
	case MatchWrong:
		return "Wrong"
	case MatchNoSelection:
		return "NoSelection"
	case MatchUnknownSlot:
		return "UnknownSlot"
	default:
		return "Unknown"
	}
}

// Matcher validates item-to-slot pairings for drag-and-drop and
// select-then-tap boards. A wrong pairing flags the slot for a short time
// and changes nothing else.
type Matcher struct {
	expected   map[string]string // slot -> item
	filled     map[string]bool
	order      []string
	selected   string
	errorSlot  string
	errorTimer TimerID
	errorDelay time.Duration
	timers     *Group
}

// NewMatcher creates a board. slots lists slot IDs in display order and
// expected maps every slot to the only item it accepts.
func NewMatcher(timers *Group, errorDelay time.Duration, slots []string, expected map[string]string) *Matcher {
	m := &Matcher{
		expected:   make(map[string]string, len(slots)),
		filled:     make(map[string]bool, len(slots)),
		order:      append([]string(nil), slots...),
		errorDelay: errorDelay,
		timers:     timers,
	}
	for _, slot := range slots {
		m.expected[slot] = expected[slot]
	}
	return m
}

// Drop pairs item with slot directly (drag and drop).
func (m *Matcher) Drop(item, slot string) MatchResult {
	want, ok := m.expected[slot]
	if !ok {
		return MatchUnknownSlot
	}
	if item != want {
		m.flag(slot)
		return MatchWrong
	}
	if m.filled[slot] {
		return MatchAlready
	}
	m.filled[slot] = true
	if m.selected == item {
		m.selected = ""
	}
	return MatchPlaced
}

// Select picks an item for a later Tap. Selecting an item whose slot is
// already filled is ignored.
func (m *Matcher) Select(item string) bool {
	for slot, want := range m.expected {
		if want == item && m.filled[slot] {
			return false
		}
	}
	m.selected = item
	return true
}

// Deselect clears the current selection.
func (m *Matcher) Deselect() {
	m.selected = ""
}

// Selected returns the selected item, or "" if none.
func (m *Matcher) Selected() string {
	return m.selected
}

// Tap pairs the selected item with slot. A wrong tap keeps the selection.
func (m *Matcher) Tap(slot string) MatchResult {
	if m.selected == "" {
		return MatchNoSelection
	}
	return m.Drop(m.selected, slot)
}

// flag raises the transient error indicator on slot, replacing any pending one.
func (m *Matcher) flag(slot string) {
	if m.errorTimer != 0 {
		m.timers.Cancel(m.errorTimer)
	}
	m.errorSlot = slot
	m.errorTimer = m.timers.After(m.errorDelay, func() {
		m.errorSlot = ""
		m.errorTimer = 0
	})
}

// ErrorSlot returns the slot currently flagged as a wrong drop, or "".
func (m *Matcher) ErrorSlot() string {
	return m.errorSlot
}

// Filled reports whether slot holds its item.
func (m *Matcher) Filled(slot string) bool {
	return m.filled[slot]
}

// Count returns how many slots are filled.
func (m *Matcher) Count() int {
	n := 0
	for _, ok := range m.filled {
		if ok {
			n++
		}
	}
	return n
}

// Total returns the number of slots.
func (m *Matcher) Total() int {
	return len(m.order)
}

// Complete reports whether every slot is filled.
func (m *Matcher) Complete() bool {
	return m.Count() == len(m.order)
}

// Slots returns slot IDs in display order.
func (m *Matcher) Slots() []string {
	return append([]string(nil), m.order...)
}

// Expected returns the item a slot accepts.
func (m *Matcher) Expected(slot string) string {
	return m.expected[slot]
}
