// Package assembly implements Level 4: placing ten components into their
// slots inside the phone, either by select-then-tap or by drag and drop.
package assembly

import (
	"errors"

	"github.com/vovakirdan/phone-secrets/internal/core"
	"github.com/vovakirdan/phone-secrets/internal/registry"
)

var (
	ErrUnknownComponent = errors.New("assembly: unknown component")
	ErrPlaced           = errors.New("assembly: component already placed")
	ErrNothingHeld      = errors.New("assembly: no component grabbed or selected")
)

var info = registry.Info{
	Number:   4,
	ID:       "assembly",
	Title:    "The Engineer",
	Subtitle: "Assemble the smartphone",
	Topic:    "Technology: what is inside a phone",
}

func init() {
	registry.Register(info, func(env registry.Env) registry.Level { return New(env) })
}

// Level is the Level 4 state machine.
type Level struct {
	env    registry.Env
	timers *core.Group

	board     *core.Matcher
	items     []string // Presentation order of the component tray
	dragging  string
	completed bool
	poweredOn bool

	ui ui
}

// New creates Level 4 with the component tray shuffled from env.Rand.
func New(env registry.Env) *Level {
	ids := make([]string, len(Components))
	expected := make(map[string]string, len(Components))
	for i, c := range Components {
		ids[i] = c.ID
		expected[c.ID] = c.ID
	}

	l := &Level{
		env:    env,
		timers: env.Clock.Group(),
		items:  ids,
	}
	if env.Rand != nil {
		l.items = core.Shuffled(env.Rand, ids)
	}
	l.board = core.NewMatcher(l.timers, env.Config.Assembly.ErrorDelay, ids, expected)
	l.ui = newUI()
	return l
}

// Items returns component IDs in tray order.
func (l *Level) Items() []string {
	return append([]string(nil), l.items...)
}

// Select picks a component for a later Tap. Selecting the component that
// is already selected releases it, like clicking it twice.
func (l *Level) Select(id string) error {
	if _, ok := componentByID(id); !ok {
		return ErrUnknownComponent
	}
	if l.board.Filled(id) {
		return ErrPlaced
	}
	if l.board.Selected() == id {
		l.board.Deselect()
		return nil
	}
	l.board.Select(id)
	return nil
}

// Deselect releases the selected component.
func (l *Level) Deselect() {
	l.board.Deselect()
}

// Selected returns the selected component, or "".
func (l *Level) Selected() string {
	return l.board.Selected()
}

// Tap places the selected component into slot. A wrong slot flags the
// error and keeps the selection.
func (l *Level) Tap(slot string) core.MatchResult {
	r := l.board.Tap(slot)
	l.placed(r)
	return r
}

// Grab starts dragging a component.
func (l *Level) Grab(id string) error {
	if _, ok := componentByID(id); !ok {
		return ErrUnknownComponent
	}
	if l.board.Filled(id) {
		return ErrPlaced
	}
	l.dragging = id
	return nil
}

// Dragging returns the component being dragged, or "".
func (l *Level) Dragging() string {
	return l.dragging
}

// Drop releases the dragged component over slot, falling back to the
// selected one. The drag ends whatever the outcome.
func (l *Level) Drop(slot string) (core.MatchResult, error) {
	item := l.dragging
	if item == "" {
		item = l.board.Selected()
	}
	if item == "" {
		return core.MatchNoSelection, ErrNothingHeld
	}
	r := l.board.Drop(item, slot)
	if r != core.MatchUnknownSlot {
		l.dragging = ""
	}
	if r == core.MatchPlaced {
		l.board.Deselect()
	}
	l.placed(r)
	return r, nil
}

func (l *Level) placed(r core.MatchResult) {
	if r != core.MatchPlaced || l.completed || !l.board.Complete() {
		return
	}
	l.completed = true
	l.timers.After(l.env.Config.Assembly.PowerOnDelay, func() {
		l.poweredOn = true
	})
	l.env.Hooks.Complete()
}

// Placed reports whether the component sits in its slot.
func (l *Level) Placed(id string) bool {
	return l.board.Filled(id)
}

// Count returns how many components are placed.
func (l *Level) Count() int {
	return l.board.Count()
}

// Total returns the number of slots.
func (l *Level) Total() int {
	return l.board.Total()
}

// Progress returns the placed fraction in [0, 1].
func (l *Level) Progress() float64 {
	return float64(l.board.Count()) / float64(l.board.Total())
}

// ErrorSlot returns the slot flagged by the last wrong placement, or "".
func (l *Level) ErrorSlot() string {
	return l.board.ErrorSlot()
}

// PoweredOn reports whether the assembled phone has switched on.
func (l *Level) PoweredOn() bool {
	return l.poweredOn
}

// Completed reports whether every component is placed.
func (l *Level) Completed() bool {
	return l.completed
}

// Next asks the orchestrator to move on. Ignored until completion.
func (l *Level) Next() bool {
	if !l.completed {
		return false
	}
	l.env.Hooks.Next()
	return true
}

// Info returns the level metadata.
func (l *Level) Info() registry.Info {
	return info
}

// Close cancels the pending error and power-on timers.
func (l *Level) Close() {
	l.timers.Stop()
}
