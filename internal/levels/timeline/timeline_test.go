package timeline

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/phone-secrets/internal/config"
	"github.com/vovakirdan/phone-secrets/internal/core"
	"github.com/vovakirdan/phone-secrets/internal/registry"
)

type harness struct {
	clock     *core.Scheduler
	level     *Level
	completes int
	nexts     int
}

func newHarness() *harness {
	h := &harness{clock: core.NewScheduler()}
	h.level = New(registry.Env{
		Clock:  h.clock,
		Config: config.Default(),
		Hooks: registry.Hooks{
			OnComplete: func() { h.completes++ },
			OnNext:     func() { h.nexts++ },
		},
	})
	return h
}

// step performs one full upgrade transition.
func (h *harness) step(t *testing.T) {
	t.Helper()
	if err := h.level.Advance(); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	h.clock.Advance(700 * time.Millisecond)
}

func TestAdvanceTransition(t *testing.T) {
	h := newHarness()

	if err := h.level.Advance(); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if h.level.InfoVisible() {
		t.Error("info should hide as soon as the upgrade starts")
	}
	if err := h.level.Advance(); err != ErrAnimating {
		t.Errorf("Advance() during transition = %v, expected ErrAnimating", err)
	}

	h.clock.Advance(499 * time.Millisecond)
	if h.level.Viewing() != 0 {
		t.Errorf("stage changed before the hide delay: Viewing() = %d", h.level.Viewing())
	}

	h.clock.Advance(time.Millisecond)
	if h.level.Viewing() != 1 || h.level.Unlocked() != 1 {
		t.Errorf("Viewing() = %d, Unlocked() = %d; expected 1, 1", h.level.Viewing(), h.level.Unlocked())
	}
	if h.level.Phase() != PhaseRevealing {
		t.Errorf("Phase() = %v, expected PhaseRevealing", h.level.Phase())
	}

	h.clock.Advance(200 * time.Millisecond)
	if !h.level.InfoVisible() {
		t.Error("info should reappear after the reveal delay")
	}
}

func TestCompletesOnceAtLastStage(t *testing.T) {
	h := newHarness()
	for i := 0; i < len(Stages)-1; i++ {
		if h.level.Completed() {
			t.Fatalf("completed early at stage %d", i)
		}
		h.step(t)
	}

	if !h.level.Completed() || h.completes != 1 {
		t.Fatalf("Completed() = %v, completes = %d; expected true, 1", h.level.Completed(), h.completes)
	}
	if err := h.level.Advance(); err != ErrLastStage {
		t.Errorf("Advance() at last stage = %v, expected ErrLastStage", err)
	}

	// Reviewing and walking back to the end must not complete again
	if err := h.level.Review(2); err != nil {
		t.Fatalf("Review(2) error = %v", err)
	}
	h.clock.Advance(time.Second)
	for h.level.Viewing() < len(Stages)-1 {
		h.step(t)
	}
	if h.completes != 1 {
		t.Errorf("completes = %d, expected 1", h.completes)
	}
}

func TestReviewKeepsProgression(t *testing.T) {
	h := newHarness()
	h.step(t)
	h.step(t)
	h.step(t)

	if err := h.level.Review(5); err != ErrLocked {
		t.Errorf("Review(5) = %v, expected ErrLocked", err)
	}
	if err := h.level.Review(1); err != nil {
		t.Fatalf("Review(1) error = %v", err)
	}
	h.clock.Advance(200 * time.Millisecond)

	if h.level.Viewing() != 1 {
		t.Errorf("Viewing() = %d, expected 1", h.level.Viewing())
	}
	if h.level.Unlocked() != 3 {
		t.Errorf("Unlocked() = %d after review, expected 3", h.level.Unlocked())
	}

	// Forward from a reviewed stage does not move the unlocked pointer back
	h.step(t)
	if h.level.Viewing() != 2 || h.level.Unlocked() != 3 {
		t.Errorf("Viewing() = %d, Unlocked() = %d; expected 2, 3", h.level.Viewing(), h.level.Unlocked())
	}
}

func TestNextRequiresCompletion(t *testing.T) {
	h := newHarness()
	h.level.Input(core.ActionNext)
	if h.nexts != 0 {
		t.Error("OnNext fired before completion")
	}

	for !h.level.Completed() {
		h.level.Input(core.ActionConfirm)
		h.clock.Advance(time.Second)
	}
	h.level.Input(core.ActionNext)
	if h.nexts != 1 {
		t.Errorf("nexts = %d, expected 1", h.nexts)
	}
}

func TestCloseCancelsTransition(t *testing.T) {
	h := newHarness()
	_ = h.level.Advance()
	h.level.Close()
	h.clock.Advance(time.Second)

	if h.level.Viewing() != 0 {
		t.Errorf("closed level still changed stage: Viewing() = %d", h.level.Viewing())
	}
	if h.clock.Pending() != 0 {
		t.Errorf("Pending() = %d after Close, expected 0", h.clock.Pending())
	}
}

func TestRender(t *testing.T) {
	h := newHarness()
	s := core.NewScreen(80, 24)
	h.level.Render(s)

	out := s.String()
	if !strings.Contains(out, "1876") || !strings.Contains(out, Stages[0].Name) {
		t.Error("Render() should show the first stage")
	}
	if !strings.Contains(out, "upgrade") {
		t.Error("Render() should show the upgrade hint")
	}
}
