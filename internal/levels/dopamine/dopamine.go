// Package dopamine implements Level 3: a one-minute dual-resource simulation
// where screen activities spike dopamine at the expense of wellbeing, and
// real activities build wellbeing slowly.
package dopamine

import (
	"errors"
	"math"
	"time"

	"github.com/vovakirdan/phone-secrets/internal/core"
	"github.com/vovakirdan/phone-secrets/internal/registry"
)

// Stage is the top-level state of the level.
type Stage int

const (
	StageIntro Stage = iota
	StagePlaying
	StageResults
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageIntro:
		return "intro"
	case StagePlaying:
		return "playing"
	case StageResults:
		return "results"
	default:
		return "unknown"
	}
}

var (
	ErrNotPlaying      = errors.New("dopamine: not playing")
	ErrFinished        = errors.New("dopamine: run already finished")
	ErrUnknownActivity = errors.New("dopamine: unknown activity")
)

var info = registry.Info{
	Number:   3,
	ID:       "dopamine",
	Title:    "The Psychologist",
	Subtitle: "The algorithm versus the brain",
	Topic:    "Psychology: dopamine, attention and balance",
}

func init() {
	registry.Register(info, func(env registry.Env) registry.Level { return New(env) })
}

// Results is the outcome of a finished run.
type Results struct {
	Scores          core.Scores
	Tier            Tier
	Crashes         int
	ScreenUses      int
	RealUses        int
	PeakDopamine    float64
	LowestWellbeing float64
	Dopamine        Volatility // Over the sampled history
	Wellbeing       Volatility
}

// Level is the Level 3 state machine.
type Level struct {
	env    registry.Env
	timers *core.Group // Every timer of a run; stopped when the run ends

	stage     Stage
	dopamine  *core.Gauge
	wellbeing *core.Gauge
	timeLeft  int
	ticks     int
	cooldowns map[string]int
	progress  map[string]int

	crashes    int
	screenUses int
	realUses   int
	peak       float64
	lowest     float64

	overheat    core.TimerID // Pending overheat crash, 0 if none
	notice      string
	noticeTimer core.TimerID
	popup       string
	popupTimer  core.TimerID
	tip         int
	completed   bool
	results     Results

	cursor core.Cursor
}

// New creates Level 3 on its intro screen.
func New(env registry.Env) *Level {
	cfg := env.Config.Dopamine
	return &Level{
		env:       env,
		timers:    env.Clock.Group(),
		dopamine:  core.NewPercent(cfg.StartDopamine),
		wellbeing: core.NewPercent(cfg.StartWellbeing),
		timeLeft:  cfg.Duration,
		cooldowns: make(map[string]int),
		progress:  make(map[string]int),
		cursor:    core.NewCursor(len(Activities())),
	}
}

// Start begins a run from a clean state. Calling it again while playing
// restarts the run; a finished run cannot be restarted.
func (l *Level) Start() error {
	if l.stage == StageResults {
		return ErrFinished
	}
	l.timers.Stop()

	cfg := l.env.Config.Dopamine
	l.stage = StagePlaying
	l.dopamine.Reset(cfg.StartDopamine)
	l.wellbeing.Reset(cfg.StartWellbeing)
	l.timeLeft = cfg.Duration
	l.ticks = 0
	clear(l.cooldowns)
	clear(l.progress)
	l.crashes, l.screenUses, l.realUses = 0, 0, 0
	l.peak, l.lowest = l.dopamine.Value(), l.wellbeing.Value()
	l.overheat, l.noticeTimer, l.popupTimer = 0, 0, 0
	l.notice, l.popup = "", ""
	l.tip = 0

	l.timers.Every(cfg.Tick, l.tick)
	l.timers.Every(cfg.TipEvery, func() {
		l.tip = (l.tip + 1) % len(Tips)
	})
	l.timers.Every(cfg.NotifyEvery, l.tempt)
	return nil
}

// tick is the once-per-second update: countdown, decay, wellbeing drift
// driven by the decayed dopamine, cooldowns, then history sampling.
func (l *Level) tick() {
	cfg := l.env.Config.Dopamine

	l.timeLeft--
	if l.timeLeft <= 0 {
		l.timeLeft = 0
		l.finish()
		return
	}

	d := l.dopamine.Add(-cfg.Decay)
	l.syncOverheat()

	switch {
	case d < cfg.WithdrawalBelow:
		l.wellbeing.Add(-cfg.WithdrawalDrain)
	case d < cfg.LowBelow:
		l.wellbeing.Add(-cfg.LowDrain)
	default:
		l.wellbeing.Add(cfg.Recovery)
	}

	for id, left := range l.cooldowns {
		if left > 0 {
			l.cooldowns[id] = left - 1
		}
	}
	l.track()

	l.ticks++
	if l.ticks%cfg.SampleEvery == 0 {
		l.dopamine.Sample()
		l.wellbeing.Sample()
	}
}

// Activate registers one press on an activity and reports whether it fired.
// Presses on an activity that is cooling down are ignored.
func (l *Level) Activate(id string) (bool, error) {
	if l.stage != StagePlaying {
		return false, ErrNotPlaying
	}
	a, ok := activityByID(id)
	if !ok {
		return false, ErrUnknownActivity
	}
	if l.cooldowns[id] > 0 {
		return false, nil
	}

	l.progress[id]++
	if l.progress[id] < a.Clicks {
		return false, nil
	}
	l.progress[id] = 0
	l.cooldowns[id] = a.Cooldown

	before := l.dopamine.Value()
	l.dopamine.Add(a.Dopamine)
	l.wellbeing.Add(a.Wellbeing)

	if a.Kind == KindScreen {
		l.screenUses++
		if before > l.env.Config.Dopamine.CrashAbove {
			msg := crashMessages[core.Min(l.crashes, len(crashMessages)-1)]
			l.crashes++
			l.flash(msg, l.env.Config.Dopamine.CrashNotice)
		}
	} else {
		l.realUses++
	}

	l.syncOverheat()
	l.track()
	return true, nil
}

// syncOverheat keeps at most one overheat crash pending while dopamine is
// above the threshold, and drops it as soon as dopamine falls back.
func (l *Level) syncOverheat() {
	cfg := l.env.Config.Dopamine
	hot := l.stage == StagePlaying && l.dopamine.Value() > cfg.OverheatAbove

	switch {
	case hot && l.overheat == 0:
		l.overheat = l.timers.After(cfg.OverheatDelay, func() {
			l.overheat = 0
			if l.stage != StagePlaying {
				return
			}
			l.dopamine.Add(-cfg.OverheatPenalty)
			l.crashes++
			l.flash(overheatMessage, cfg.OverheatNotice)
			l.syncOverheat()
			l.track()
		})
	case !hot && l.overheat != 0:
		l.timers.Cancel(l.overheat)
		l.overheat = 0
	}
}

// flash shows a crash notice for d, replacing the current one.
func (l *Level) flash(msg string, d time.Duration) {
	if l.noticeTimer != 0 {
		l.timers.Cancel(l.noticeTimer)
	}
	l.notice = msg
	l.noticeTimer = l.timers.After(d, func() {
		l.notice = ""
		l.noticeTimer = 0
	})
}

// tempt may pop up a fake notification.
func (l *Level) tempt() {
	cfg := l.env.Config.Dopamine
	if l.env.Rand.Float64() >= cfg.NotifyChance {
		return
	}
	if l.popupTimer != 0 {
		l.timers.Cancel(l.popupTimer)
	}
	l.popup = notifications[l.env.Rand.IntN(len(notifications))]
	l.popupTimer = l.timers.After(cfg.NotifyFor, func() {
		l.popup = ""
		l.popupTimer = 0
	})
}

func (l *Level) track() {
	l.peak = math.Max(l.peak, l.dopamine.Value())
	l.lowest = math.Min(l.lowest, l.wellbeing.Value())
}

// finish ends the run, tears down its timers and reports the scores.
func (l *Level) finish() {
	l.stage = StageResults
	l.timers.Stop()
	l.overheat, l.noticeTimer, l.popupTimer = 0, 0, 0
	l.notice, l.popup = "", ""

	l.results = Results{
		Scores: core.Scores{
			Wellbeing: l.wellbeing.Rounded(),
			Dopamine:  l.dopamine.Rounded(),
		},
		Tier:            TierFor(l.wellbeing.Value()),
		Crashes:         l.crashes,
		ScreenUses:      l.screenUses,
		RealUses:        l.realUses,
		PeakDopamine:    l.peak,
		LowestWellbeing: l.lowest,
		Dopamine:        Summarize(l.dopamine.History()),
		Wellbeing:       Summarize(l.wellbeing.History()),
	}

	if l.completed {
		return
	}
	l.completed = true
	l.env.Hooks.Scores(l.results.Scores)
	l.env.Hooks.Complete()
}

// Stage returns the current stage.
func (l *Level) Stage() Stage { return l.stage }

// Dopamine returns the dopamine gauge value.
func (l *Level) Dopamine() float64 { return l.dopamine.Value() }

// Wellbeing returns the wellbeing gauge value.
func (l *Level) Wellbeing() float64 { return l.wellbeing.Value() }

// TimeLeft returns the remaining ticks of the run.
func (l *Level) TimeLeft() int { return l.timeLeft }

// Cooldown returns the remaining cooldown ticks of an activity.
func (l *Level) Cooldown(id string) int { return l.cooldowns[id] }

// Progress returns the accumulated presses of an activity.
func (l *Level) Progress(id string) int { return l.progress[id] }

// Crashes returns the crash counter.
func (l *Level) Crashes() int { return l.crashes }

// Uses returns how many screen and real activities fired.
func (l *Level) Uses() (screenUses, realUses int) { return l.screenUses, l.realUses }

// Notice returns the crash message on display, or "".
func (l *Level) Notice() string { return l.notice }

// Popup returns the fake notification on display, or "".
func (l *Level) Popup() string { return l.popup }

// Tip returns the tip on display.
func (l *Level) Tip() string { return Tips[l.tip] }

// OverheatPending reports whether an overheat crash is scheduled.
func (l *Level) OverheatPending() bool { return l.overheat != 0 }

// Withdrawal reports whether dopamine is below the withdrawal threshold.
func (l *Level) Withdrawal() bool {
	return l.dopamine.Value() < l.env.Config.Dopamine.WithdrawalBelow
}

// Grayscale returns how washed out the view is during withdrawal, 0..100.
func (l *Level) Grayscale() float64 {
	threshold := l.env.Config.Dopamine.WithdrawalBelow
	d := l.dopamine.Value()
	if d >= threshold {
		return 0
	}
	return math.Min(100, (threshold-d)*5)
}

// History returns the most recent samples of both gauges.
func (l *Level) History() (dopamine, wellbeing []float64) {
	n := l.env.Config.Dopamine.HistoryWindow
	return l.dopamine.Recent(n), l.wellbeing.Recent(n)
}

// Results returns the outcome once the run finished.
func (l *Level) Results() (Results, bool) {
	return l.results, l.stage == StageResults
}

// Completed reports whether a run finished.
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
	l.overheat, l.noticeTimer, l.popupTimer = 0, 0, 0
}
