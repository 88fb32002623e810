// Package timeline implements Level 1: a linear walk through the history of
// the telephone with a short hide/reveal transition between stages.
package timeline

import (
	"errors"

	"github.com/vovakirdan/phone-secrets/internal/core"
	"github.com/vovakirdan/phone-secrets/internal/registry"
)

// Phase is the transition state of the stage display.
type Phase int

const (
	PhaseIdle      Phase = iota // Info visible, input accepted
	PhaseHiding                 // Info hidden, stage about to change
	PhaseRevealing              // Stage changed, info about to reappear
)

var (
	ErrAnimating = errors.New("timeline: transition in progress")
	ErrLastStage = errors.New("timeline: already at the last stage")
	ErrLocked    = errors.New("timeline: stage not unlocked yet")
)

var info = registry.Info{
	Number:   1,
	ID:       "timeline",
	Title:    "The Historian",
	Subtitle: "150 years of telephones",
	Topic:    "History: from Bell's wire to 5G",
}

func init() {
	registry.Register(info, func(env registry.Env) registry.Level { return New(env) })
}

// Level is the Level 1 state machine.
type Level struct {
	env    registry.Env
	timers *core.Group

	viewing   int // Stage on display
	unlocked  int // Furthest stage reached
	phase     Phase
	completed bool
}

// New creates Level 1 at the first stage.
func New(env registry.Env) *Level {
	return &Level{
		env:    env,
		timers: env.Clock.Group(),
	}
}

// Advance moves the display one stage forward: info hides, the stage changes
// after the hide delay, and info reappears after the reveal delay.
func (l *Level) Advance() error {
	if l.phase != PhaseIdle {
		return ErrAnimating
	}
	if l.viewing >= len(Stages)-1 {
		return ErrLastStage
	}

	cfg := l.env.Config.Timeline
	l.phase = PhaseHiding
	l.timers.After(cfg.HideDelay, func() {
		l.viewing++
		if l.viewing > l.unlocked {
			l.unlocked = l.viewing
		}
		l.phase = PhaseRevealing
		l.checkComplete()
		l.timers.After(cfg.RevealDelay, func() {
			l.phase = PhaseIdle
		})
	})
	return nil
}

// Review shows an already unlocked stage without touching progression.
func (l *Level) Review(i int) error {
	if l.phase != PhaseIdle {
		return ErrAnimating
	}
	if i < 0 || i > l.unlocked {
		return ErrLocked
	}
	if i == l.viewing {
		return nil
	}

	l.phase = PhaseRevealing
	l.timers.After(l.env.Config.Timeline.RevealDelay, func() {
		l.viewing = i
		l.phase = PhaseIdle
	})
	return nil
}

func (l *Level) checkComplete() {
	if l.completed || l.unlocked != len(Stages)-1 {
		return
	}
	l.completed = true
	l.env.Hooks.Complete()
}

// Next asks the orchestrator for the following level once completed.
func (l *Level) Next() bool {
	if !l.completed {
		return false
	}
	l.env.Hooks.Next()
	return true
}

// Viewing returns the index of the stage on display.
func (l *Level) Viewing() int { return l.viewing }

// Unlocked returns the index of the furthest stage reached.
func (l *Level) Unlocked() int { return l.unlocked }

// Phase returns the transition state.
func (l *Level) Phase() Phase { return l.phase }

// InfoVisible reports whether the stage description is shown.
func (l *Level) InfoVisible() bool { return l.phase == PhaseIdle }

// Completed reports whether the last stage was reached.
func (l *Level) Completed() bool { return l.completed }

// Info returns the registry metadata.
func (l *Level) Info() registry.Info { return info }

// Close cancels pending transitions.
func (l *Level) Close() {
	l.timers.Stop()
}
