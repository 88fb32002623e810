// Package session binds one player's adventure together: the progress
// orchestrator, the virtual clock and the level on display.
// The platform layer drives a session with Advance and Input and reads it
// back for rendering.
package session

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/phone-secrets/internal/config"
	"github.com/vovakirdan/phone-secrets/internal/core"
	"github.com/vovakirdan/phone-secrets/internal/levels/dopamine"
	"github.com/vovakirdan/phone-secrets/internal/progress"
	"github.com/vovakirdan/phone-secrets/internal/registry"
	"github.com/vovakirdan/phone-secrets/internal/storage"
)

// View is what the platform should draw.
type View int

const (
	ViewWelcome View = iota
	ViewLevel
	ViewFinal
)

// RunRecorder stores finished Level 3 runs.
type RunRecorder interface {
	RecordRun(r storage.Run) (int64, error)
}

// Options configures a session.
type Options struct {
	Config   config.Config
	Seed     int64  // 0 picks a time-based seed
	Profile  string // Owner of saved progress and recorded runs
	Store    progress.Store
	Recorder RunRecorder
	Logger   *log.Logger
}

// Session is one player's game. It is not safe for concurrent use; the
// platform drives it from its update loop.
type Session struct {
	id     string
	opts   Options
	logger *log.Logger

	clock *core.Scheduler
	rand  *rand.Rand
	orch  *progress.Orchestrator

	level    registry.Level
	levelNum int
	gen      uint64 // Bumped whenever the live level changes
	lastRun  *storage.Run
}

// New creates a session and restores the saved progress of the profile.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Store == nil {
		opts.Store = progress.NewMemoryStore()
	}

	id := uuid.NewString()
	logger = logger.With("session", id[:8], "profile", opts.Profile)

	s := &Session{
		id:     id,
		opts:   opts,
		logger: logger,
		clock:  core.NewScheduler(),
		rand:   core.NewRand(opts.Seed),
		orch:   progress.New(opts.Store, logger),
	}
	if s.orch.Load() {
		logger.Info("progress restored", "level", s.orch.CurrentLevel(), "completed", s.orch.CompletedLevels())
	}
	s.sync()
	return s
}

// ID returns the unique session identifier.
func (s *Session) ID() string {
	return s.id
}

// Profile returns the profile name.
func (s *Session) Profile() string {
	return s.opts.Profile
}

// Advance moves the session clock forward, firing level timers.
func (s *Session) Advance(d time.Duration) {
	s.clock.Advance(d)
}

// Now returns the session's virtual time.
func (s *Session) Now() time.Duration {
	return s.clock.Now()
}

// Input routes one action to the screen on display.
func (s *Session) Input(a core.Action) {
	switch s.View() {
	case ViewWelcome:
		if a == core.ActionConfirm {
			s.Start()
		}
	case ViewFinal:
		switch a {
		case core.ActionRestart:
			s.Restart()
		case core.ActionBack:
			_ = s.Navigate(progress.Welcome)
		}
	case ViewLevel:
		if a == core.ActionBack {
			_ = s.Navigate(progress.Welcome)
			return
		}
		if s.level != nil {
			s.level.Input(a)
		}
	}
}

// Start leaves the welcome screen for level 1.
func (s *Session) Start() {
	s.orch.Start()
	s.sync()
}

// Navigate jumps to level n; progress.Welcome returns to the start screen.
func (s *Session) Navigate(n int) error {
	if err := s.orch.NavigateTo(n); err != nil {
		return err
	}
	s.sync()
	return nil
}

// Next moves past the current level once it is completed.
// Returns false if there is nothing to move on from.
func (s *Session) Next() bool {
	if s.level == nil || !s.level.Completed() {
		return false
	}
	if err := s.orch.GoToNext(s.levelNum); err != nil {
		return false
	}
	s.sync()
	return true
}

// Restart wipes the progress and returns to the welcome screen.
func (s *Session) Restart() {
	s.orch.Restart()
	s.lastRun = nil
	s.logger.Info("adventure restarted")
	s.sync()
}

// Close stops the level on display.
func (s *Session) Close() {
	s.closeLevel()
}

// View returns the screen that should be on display.
func (s *Session) View() View {
	switch {
	case s.orch.ShowFinal():
		return ViewFinal
	case s.orch.CurrentLevel() == progress.Welcome:
		return ViewWelcome
	default:
		return ViewLevel
	}
}

// Level returns the level on display, nil outside ViewLevel.
func (s *Session) Level() registry.Level {
	return s.level
}

// Progress exposes the orchestrator for read access.
func (s *Session) Progress() *progress.Orchestrator {
	return s.orch
}

// LastRun returns the Level 3 run recorded during this session.
func (s *Session) LastRun() (storage.Run, bool) {
	if s.lastRun == nil {
		return storage.Run{}, false
	}
	return *s.lastRun, true
}

// sync makes the live level match the orchestrator. A level that leaves the
// display is closed so none of its timers outlive it.
func (s *Session) sync() {
	want := 0
	if s.View() == ViewLevel {
		want = s.orch.CurrentLevel()
	}
	if want == s.levelNum && (want == 0) == (s.level == nil) {
		return
	}
	s.closeLevel()
	if want == 0 {
		return
	}

	s.gen++
	lvl, err := registry.Create(want, s.env(want))
	if err != nil {
		s.logger.Error("cannot create level", "level", want, "err", err)
		return
	}
	s.level, s.levelNum = lvl, want
	s.logger.Debug("level opened", "level", want, "id", lvl.Info().ID)
}

func (s *Session) closeLevel() {
	if s.level == nil {
		return
	}
	s.level.Close()
	s.gen++
	s.logger.Debug("level closed", "level", s.levelNum)
	s.level, s.levelNum = nil, 0
}

// env builds the environment of level n. Hooks of a level that has been
// replaced since are ignored.
func (s *Session) env(n int) registry.Env {
	gen := s.gen
	live := func() bool { return s.gen == gen }

	return registry.Env{
		Clock:  s.clock,
		Rand:   s.rand,
		Config: s.opts.Config,
		Hooks: registry.Hooks{
			OnComplete: func() {
				if !live() {
					return
				}
				if err := s.orch.CompleteLevel(n); err == nil {
					s.logger.Info("level completed", "level", n, "progress", s.orch.Ratio())
				}
			},
			OnNext: func() {
				if !live() {
					return
				}
				_ = s.orch.GoToNext(n)
				s.sync()
			},
			OnScores: func(sc core.Scores) {
				if !live() {
					return
				}
				s.orch.SetLevel3Scores(sc)
				s.record(sc)
			},
		},
	}
}

// record stores the Level 3 run that just finished.
func (s *Session) record(sc core.Scores) {
	run := storage.Run{
		Profile:   s.opts.Profile,
		Wellbeing: sc.Wellbeing,
		Dopamine:  sc.Dopamine,
	}
	if lvl, ok := s.level.(*dopamine.Level); ok {
		if res, done := lvl.Results(); done {
			run.Crashes = res.Crashes
			run.ScreenUses = res.ScreenUses
			run.RealUses = res.RealUses
			run.PeakDopamine = res.PeakDopamine
			run.LowestWellbeing = res.LowestWellbeing
			run.Tier = res.Tier.String()
			run.Volatility = res.Dopamine.StdDev
		}
	}
	run.RunID = uuid.NewString()
	s.lastRun = &run

	if s.opts.Recorder == nil {
		return
	}
	if _, err := s.opts.Recorder.RecordRun(run); err != nil {
		s.logger.Warn("cannot record run", "err", err)
		return
	}
	s.logger.Info("run recorded", "run", run.RunID, "wellbeing", run.Wellbeing, "tier", run.Tier)
}
