// Package signal implements Level 5: tuning a frequency slider until a
// call goes through.
package signal

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/phone-secrets/internal/core"
	"github.com/vovakirdan/phone-secrets/internal/registry"
)

// Phase is the state of the connection.
type Phase int

const (
	PhaseTuning     Phase = iota // Slider free, confirm tries a connection
	PhaseConnecting              // Call running, content not revealed yet
	PhaseConnected               // Content revealed, level complete
)

var ErrLocked = errors.New("signal: slider locked after connecting")

var info = registry.Info{
	Number:   5,
	ID:       "signal",
	Title:    "The Physicist",
	Subtitle: "Find the right frequency",
	Topic:    "Physics: the electromagnetic spectrum",
}

func init() {
	registry.Register(info, func(env registry.Env) registry.Level { return New(env) })
}

// Level is the Level 5 state machine.
type Level struct {
	env    registry.Env
	timers *core.Group

	phase     Phase
	value     int
	failure   Failure
	failTimer core.TimerID
	call      int // Call ticks since connecting
	attempts  int
}

// New creates Level 5 with the slider at its start position.
func New(env registry.Env) *Level {
	return &Level{
		env:    env,
		timers: env.Clock.Group(),
		value:  core.Clamp(env.Config.Signal.Start, 0, 100),
	}
}

// Value returns the slider position.
func (l *Level) Value() int {
	return l.value
}

// Move shifts the slider by delta. Moving clears a pending failure.
func (l *Level) Move(delta int) error {
	return l.Set(l.value + delta)
}

// Set places the slider at value, clamped to 0..100.
func (l *Level) Set(value int) error {
	if l.phase != PhaseTuning {
		return ErrLocked
	}
	value = core.Clamp(value, 0, 100)
	if value == l.value {
		return nil
	}
	l.value = value
	l.clearFailure()
	return nil
}

// InTarget reports whether the slider sits in the mobile telephony range.
func (l *Level) InTarget() bool {
	cfg := l.env.Config.Signal
	return l.value >= cfg.TargetMin && l.value <= cfg.TargetMax
}

// Danger reports whether the slider is in the ionizing radiation zone.
func (l *Level) Danger() bool {
	return l.value >= l.env.Config.Signal.DangerFrom
}

// Band returns the spectrum band under the slider.
func (l *Level) Band() Band {
	return BandFor(l.value)
}

// Bars returns the signal strength, 0..5.
func (l *Level) Bars() int {
	v := l.value
	switch {
	case l.InTarget():
		return 5
	case v >= 15 && v <= 40:
		return 3
	case v >= 10 && v <= 50:
		return 2
	case v > 50:
		return 1
	default:
		return 0
	}
}

// Confirm tries to connect at the current frequency. It reports whether
// the call went through. Once connected, further confirms are ignored.
func (l *Level) Confirm() (bool, error) {
	if l.phase != PhaseTuning {
		return false, ErrLocked
	}
	l.attempts++
	if !l.InTarget() {
		l.fail(l.classify())
		return false, nil
	}

	cfg := l.env.Config.Signal
	l.clearFailure()
	l.phase = PhaseConnecting
	l.timers.Every(cfg.CallTick, func() {
		l.call++
	})
	l.timers.After(cfg.RevealDelay, func() {
		l.phase = PhaseConnected
		l.env.Hooks.Complete()
	})
	return true, nil
}

func (l *Level) classify() Failure {
	if l.Danger() {
		return FailureRadiation
	}
	switch l.Band().ID {
	case "radio":
		return FailureLowBandwidth
	case "infrared":
		return FailureInfrared
	case "visible":
		return FailureVisible
	case "ultraviolet":
		return FailureUltraviolet
	default:
		return FailureGeneric
	}
}

func (l *Level) fail(f Failure) {
	l.clearFailure()
	l.failure = f
	l.failTimer = l.timers.After(l.env.Config.Signal.FailureFor, func() {
		l.failure = FailureNone
		l.failTimer = 0
	})
}

func (l *Level) clearFailure() {
	if l.failTimer != 0 {
		l.timers.Cancel(l.failTimer)
		l.failTimer = 0
	}
	l.failure = FailureNone
}

// Failure returns the reason of the last failed attempt, while it shows.
func (l *Level) Failure() Failure {
	return l.failure
}

// Attempts returns how many connection attempts were made.
func (l *Level) Attempts() int {
	return l.attempts
}

// Phase returns the connection state.
func (l *Level) Phase() Phase {
	return l.phase
}

// CallDuration returns how long the call has been running.
func (l *Level) CallDuration() time.Duration {
	return time.Duration(l.call) * l.env.Config.Signal.CallTick
}

// CallClock formats the call duration as mm:ss.
func (l *Level) CallClock() string {
	s := int(l.CallDuration() / time.Second)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

// Completed reports whether the educational content is revealed.
func (l *Level) Completed() bool {
	return l.phase == PhaseConnected
}

// Next asks the orchestrator to move on. Ignored until completion.
func (l *Level) Next() bool {
	if !l.Completed() {
		return false
	}
	l.env.Hooks.Next()
	return true
}

// Info returns the level metadata.
func (l *Level) Info() registry.Info {
	return info
}

// Close stops the call counter and pending timers.
func (l *Level) Close() {
	l.timers.Stop()
	l.failTimer = 0
}
