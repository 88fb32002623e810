// Package materials implements Level 2: the life cycle of a phone's matter
// in three forward-only phases (extraction, assembly, end of life).
package materials

import (
	"errors"

	"github.com/vovakirdan/phone-secrets/internal/core"
	"github.com/vovakirdan/phone-secrets/internal/registry"
)

// Phase is a stage of the life cycle.
type Phase int

const (
	PhaseExtraction Phase = iota + 1
	PhaseAssembly
	PhaseEndOfLife
)

// String returns the phase title.
func (p Phase) String() string {
	switch p {
	case PhaseExtraction:
		return "Extraction"
	case PhaseAssembly:
		return "Manufacturing"
	case PhaseEndOfLife:
		return "End of life"
	default:
		return "Unknown"
	}
}

// Choice is the end-of-life decision.
type Choice int

const (
	ChoiceNone Choice = iota
	ChoiceDispose
	ChoiceRecycle
	ChoiceBoth // Recycled after having seen the landfill
)

// Landscape is the state of the mining scenery.
type Landscape int

const (
	LandscapeClean Landscape = iota
	LandscapePolluted
	LandscapeDevastated
)

// Tree is the display state of one tree of the scenery.
type Tree int

const (
	TreeStanding Tree = iota
	TreeFading
	TreeGone
)

var (
	ErrWrongPhase     = errors.New("materials: action not available in this phase")
	ErrNotReady       = errors.New("materials: phase not finished")
	ErrLastPhase      = errors.New("materials: already in the last phase")
	ErrUnknownMineral = errors.New("materials: unknown mineral")
	ErrChoiceMade     = errors.New("materials: choice already made")
)

var info = registry.Info{
	Number:   2,
	ID:       "materials",
	Title:    "The Chemist",
	Subtitle: "The life cycle of matter",
	Topic:    "Ecology: minerals, CO2 and recycling",
}

func init() {
	registry.Register(info, func(env registry.Env) registry.Level { return New(env) })
}

// Level is the Level 2 state machine.
type Level struct {
	env    registry.Env
	timers *core.Group

	phase  Phase
	meters map[string]*core.Gauge
	damage *core.Gauge

	board    *core.Matcher
	co2      *core.Gauge
	counting bool
	counter  core.TimerID
	ready    bool // CO2 count finished, end of life may start

	choice    Choice
	animating Choice // Animation on display: dispose or recycle
	animStep  int
	animIDs   []core.TimerID
	completed bool

	ui ui
}

// New creates Level 2 in the extraction phase.
func New(env registry.Env) *Level {
	l := &Level{
		env:    env,
		timers: env.Clock.Group(),
		phase:  PhaseExtraction,
		meters: make(map[string]*core.Gauge, len(Minerals)),
		damage: core.NewPercent(0),
		co2:    core.NewPercent(0),
	}
	for _, m := range Minerals {
		l.meters[m.ID] = core.NewPercent(0)
	}

	slots := make([]string, len(Parts))
	expected := make(map[string]string, len(Parts))
	for i, p := range Parts {
		slots[i] = p.ID
	}
	for _, m := range Minerals {
		expected[m.Part] = m.ID
	}
	l.board = core.NewMatcher(l.timers, env.Config.Materials.ErrorDelay, slots, expected)
	l.ui = newUI()
	return l
}

// Extract mines one click of a mineral and returns the gain.
// Every click harms the environment, even on a full meter.
func (l *Level) Extract(id string) (float64, error) {
	if l.phase != PhaseExtraction {
		return 0, ErrWrongPhase
	}
	g, ok := l.meters[id]
	if !ok {
		return 0, ErrUnknownMineral
	}

	cfg := l.env.Config.Materials
	l.damage.Add(cfg.DamagePerClick)
	if g.Full() {
		return 0, nil
	}
	before := g.Value()
	g.Add(core.Uniform(l.env.Rand, cfg.GainMin, cfg.GainMax))
	return g.Value() - before, nil
}

// Extracted returns the meter of a mineral, 0..100.
func (l *Level) Extracted(id string) float64 {
	if g, ok := l.meters[id]; ok {
		return g.Value()
	}
	return 0
}

// AllExtracted reports whether every meter reached 100.
func (l *Level) AllExtracted() bool {
	for _, g := range l.meters {
		if !g.Full() {
			return false
		}
	}
	return true
}

// Damage returns the environmental damage, 0..100.
func (l *Level) Damage() float64 { return l.damage.Value() }

// TreeState returns the display state of tree i.
// Tree i of N is gone once damage reaches (i+1)*span/N.
func (l *Level) TreeState(i int) Tree {
	cfg := l.env.Config.Materials
	threshold := float64(i+1) * cfg.TreeSpan / float64(cfg.Trees)
	d := l.damage.Value()
	switch {
	case d >= threshold:
		return TreeGone
	case d >= threshold-cfg.FadeBand:
		return TreeFading
	default:
		return TreeStanding
	}
}

// Landscape classifies the scenery from the damage.
func (l *Level) Landscape() Landscape {
	d := l.damage.Value()
	switch {
	case d < 30:
		return LandscapeClean
	case d < 60:
		return LandscapePolluted
	default:
		return LandscapeDevastated
	}
}

// AdvancePhase moves to the next phase once the current one is finished.
func (l *Level) AdvancePhase() error {
	switch l.phase {
	case PhaseExtraction:
		if !l.AllExtracted() {
			return ErrNotReady
		}
		l.phase = PhaseAssembly
	case PhaseAssembly:
		if !l.ready {
			return ErrNotReady
		}
		l.phase = PhaseEndOfLife
	default:
		return ErrLastPhase
	}
	l.ui.reset()
	return nil
}

// Assemble drops a mineral onto a part slot.
func (l *Level) Assemble(mineral, part string) (core.MatchResult, error) {
	if l.phase != PhaseAssembly {
		return core.MatchNoSelection, ErrWrongPhase
	}
	return l.matched(l.board.Drop(mineral, part)), nil
}

// SelectMineral picks a mineral for a later TapPart.
func (l *Level) SelectMineral(id string) bool {
	if l.phase != PhaseAssembly {
		return false
	}
	return l.board.Select(id)
}

// TapPart places the selected mineral on a part slot.
func (l *Level) TapPart(part string) (core.MatchResult, error) {
	if l.phase != PhaseAssembly {
		return core.MatchNoSelection, ErrWrongPhase
	}
	return l.matched(l.board.Tap(part)), nil
}

func (l *Level) matched(r core.MatchResult) core.MatchResult {
	if r != core.MatchPlaced {
		return r
	}
	l.co2.Add(l.env.Config.Materials.CO2PerPart)
	if l.board.Complete() {
		l.startCounting()
	}
	return r
}

// startCounting runs the CO2 counter up to its target, at most once.
func (l *Level) startCounting() {
	if l.counting || l.ready {
		return
	}
	cfg := l.env.Config.Materials
	if l.co2.Value() >= cfg.CO2Target {
		l.ready = true
		return
	}

	l.counting = true
	l.counter = l.timers.Every(cfg.CO2Interval, func() {
		next := l.co2.Value() + cfg.CO2Step
		if next >= cfg.CO2Target {
			l.co2.Set(cfg.CO2Target)
			l.timers.Cancel(l.counter)
			l.counting = false
			l.ready = true
			return
		}
		l.co2.Set(next)
	})
}

// Assembled reports whether a mineral sits in its part.
func (l *Level) Assembled(mineral string) bool {
	m, ok := mineralByID(mineral)
	return ok && l.board.Filled(m.Part)
}

// Board exposes the assembly matcher for display.
func (l *Level) Board() *core.Matcher { return l.board }

// CO2 returns the displayed CO2 counter in kg.
func (l *Level) CO2() float64 { return l.co2.Value() }

// Counting reports whether the CO2 counter is running.
func (l *Level) Counting() bool { return l.counting }

// Ready reports whether the assembly phase is finished.
func (l *Level) Ready() bool { return l.ready }

// Dispose throws the phone away. Only possible as the first choice.
func (l *Level) Dispose() error {
	if l.phase != PhaseEndOfLife {
		return ErrWrongPhase
	}
	if l.choice != ChoiceNone {
		return ErrChoiceMade
	}
	l.choice = ChoiceDispose
	l.play(ChoiceDispose, nil)
	return nil
}

// Recycle sends the phone to recycling. After a dispose the choice becomes
// ChoiceBoth. The level completes when the recycling animation ends.
func (l *Level) Recycle() error {
	if l.phase != PhaseEndOfLife {
		return ErrWrongPhase
	}
	switch l.choice {
	case ChoiceNone:
		l.choice = ChoiceRecycle
	case ChoiceDispose:
		l.choice = ChoiceBoth
	default:
		return ErrChoiceMade
	}
	l.play(ChoiceRecycle, l.complete)
	return nil
}

// play starts a three-step animation, replacing any running one.
// done runs when the last step is revealed.
func (l *Level) play(kind Choice, done func()) {
	for _, id := range l.animIDs {
		l.timers.Cancel(id)
	}
	l.animIDs = l.animIDs[:0]

	l.animating = kind
	l.animStep = 1
	delays := l.env.Config.Materials.StepDelays
	l.animIDs = append(l.animIDs,
		l.timers.After(delays[0], func() { l.animStep = 2 }),
		l.timers.After(delays[1], func() {
			l.animStep = 3
			if done != nil {
				done()
			}
		}),
	)
}

func (l *Level) complete() {
	if l.completed {
		return
	}
	l.completed = true
	l.env.Hooks.Complete()
}

// Phase returns the current phase.
func (l *Level) Phase() Phase { return l.phase }

// Choice returns the recorded end-of-life choice.
func (l *Level) Choice() Choice { return l.choice }

// Animation returns which animation is on display and its step (0 if none).
func (l *Level) Animation() (Choice, int) { return l.animating, l.animStep }

// Completed reports whether the recycling animation finished.
func (l *Level) Completed() bool { return l.completed }

// Next asks the orchestrator for the following level once completed.
func (l *Level) Next() bool {
	if !l.completed {
		return false
	}
	l.env.Hooks.Next()
	return true
}

// Info returns the registry metadata.
func (l *Level) Info() registry.Info { return info }

// Close cancels every pending timer.
func (l *Level) Close() {
	l.timers.Stop()
	l.counting = false
}
