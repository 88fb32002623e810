// Package progress tracks the adventure across levels: which levels are
// done, where the player stands and the Level 3 scores handed to the final
// screen. Every change is saved as one document through a Store.
package progress

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/phone-secrets/internal/core"
)

// Levels is the number of levels in the adventure.
const Levels = 5

// Welcome is the current level before the adventure starts.
const Welcome = 0

var ErrInvalidLevel = errors.New("progress: invalid level")

// NavItem is one entry of the level navigation bar.
type NavItem struct {
	Number    int
	Completed bool
	Current   bool
}

// Orchestrator owns the progress state. It is not safe for concurrent use;
// each session drives its own orchestrator.
type Orchestrator struct {
	store  Store
	logger *log.Logger

	current   int
	completed map[int]bool
	scores    *core.Scores
	showFinal bool
}

// New creates an orchestrator in the welcome state. Call Load to restore a
// saved adventure. A nil logger discards persistence warnings.
func New(store Store, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Orchestrator{
		store:     store,
		logger:    logger,
		completed: make(map[int]bool),
	}
}

// Load restores the saved state. Missing or malformed data leaves the
// defaults in place. It reports whether a saved state was applied.
func (o *Orchestrator) Load() bool {
	if o.store == nil {
		return false
	}
	data, err := o.store.Load()
	if err != nil {
		o.logger.Warn("cannot read saved progress", "err", err)
		return false
	}
	if data == nil {
		return false
	}
	snap, err := Decode(data, Levels)
	if err != nil {
		o.logger.Warn("ignoring malformed saved progress", "err", err)
		return false
	}

	o.current = snap.CurrentLevel
	clear(o.completed)
	for _, n := range snap.CompletedLevels {
		o.completed[n] = true
	}
	o.scores = snap.Level3Scores
	o.showFinal = false
	return true
}

// Start leaves the welcome screen for level 1.
func (o *Orchestrator) Start() {
	o.current = 1
	o.showFinal = false
	o.save()
}

// CompleteLevel marks level n as completed. Repeated calls change nothing.
func (o *Orchestrator) CompleteLevel(n int) error {
	if err := check(n); err != nil {
		return err
	}
	if o.completed[n] {
		return nil
	}
	o.completed[n] = true
	o.save()
	return nil
}

// GoToNext moves past level current: to the following level, or to the
// final screen after the last one.
func (o *Orchestrator) GoToNext(current int) error {
	if err := check(current); err != nil {
		return err
	}
	if current < Levels {
		o.current = current + 1
	} else {
		o.showFinal = true
	}
	o.save()
	return nil
}

// NavigateTo jumps to any level, completed or not, and leaves the final
// screen. Welcome is accepted to go back to the start screen.
func (o *Orchestrator) NavigateTo(n int) error {
	if n != Welcome {
		if err := check(n); err != nil {
			return err
		}
	}
	o.current = n
	o.showFinal = false
	o.save()
	return nil
}

// SetLevel3Scores records the scores reported by Level 3.
func (o *Orchestrator) SetLevel3Scores(s core.Scores) {
	s.Wellbeing = core.Clamp(s.Wellbeing, 0, 100)
	s.Dopamine = core.Clamp(s.Dopamine, 0, 100)
	o.scores = &s
	o.save()
}

// Restart resets everything and erases the saved document.
func (o *Orchestrator) Restart() {
	o.current = Welcome
	clear(o.completed)
	o.scores = nil
	o.showFinal = false
	if o.store == nil {
		return
	}
	if err := o.store.Clear(); err != nil {
		o.logger.Warn("cannot clear saved progress", "err", err)
	}
}

// CurrentLevel returns the level on display, Welcome before the start.
func (o *Orchestrator) CurrentLevel() int {
	return o.current
}

// ShowFinal reports whether the final screen is on display.
func (o *Orchestrator) ShowFinal() bool {
	return o.showFinal
}

// Completed reports whether level n is completed.
func (o *Orchestrator) Completed(n int) bool {
	return o.completed[n]
}

// CompletedLevels returns completed level numbers in ascending order.
func (o *Orchestrator) CompletedLevels() []int {
	out := make([]int, 0, len(o.completed))
	for n := range o.completed {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// AllCompleted reports whether every level is completed.
func (o *Orchestrator) AllCompleted() bool {
	return len(o.completed) == Levels
}

// Level3Scores returns the Level 3 scores, if reported.
func (o *Orchestrator) Level3Scores() (core.Scores, bool) {
	if o.scores == nil {
		return core.Scores{}, false
	}
	return *o.scores, true
}

// Ratio returns the completed fraction of the adventure.
func (o *Orchestrator) Ratio() float64 {
	return float64(len(o.completed)) / Levels
}

// Nav returns the navigation bar entries for levels 1..Levels.
func (o *Orchestrator) Nav() []NavItem {
	items := make([]NavItem, Levels)
	for i := range items {
		n := i + 1
		items[i] = NavItem{
			Number:    n,
			Completed: o.completed[n],
			Current:   !o.showFinal && o.current == n,
		}
	}
	return items
}

// Snapshot returns the persisted form of the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	s := Snapshot{
		CompletedLevels: o.CompletedLevels(),
		CurrentLevel:    o.current,
	}
	if o.scores != nil {
		sc := *o.scores
		s.Level3Scores = &sc
	}
	return s
}

// save writes the snapshot. Failures are logged; play goes on regardless.
func (o *Orchestrator) save() {
	if o.store == nil {
		return
	}
	data, err := Encode(o.Snapshot())
	if err == nil {
		err = o.store.Save(data)
	}
	if err != nil {
		o.logger.Warn("cannot save progress", "err", err)
	}
}

func check(n int) error {
	if n < 1 || n > Levels {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, n)
	}
	return nil
}
