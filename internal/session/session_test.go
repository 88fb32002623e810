package session

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/phone-secrets/internal/config"
	"github.com/vovakirdan/phone-secrets/internal/core"
	"github.com/vovakirdan/phone-secrets/internal/levels/assembly"
	"github.com/vovakirdan/phone-secrets/internal/levels/dopamine"
	"github.com/vovakirdan/phone-secrets/internal/levels/materials"
	"github.com/vovakirdan/phone-secrets/internal/levels/signal"
	"github.com/vovakirdan/phone-secrets/internal/levels/timeline"
	"github.com/vovakirdan/phone-secrets/internal/progress"
	"github.com/vovakirdan/phone-secrets/internal/storage"
)

type recorder struct {
	runs []storage.Run
	err  error
}

func (r *recorder) RecordRun(run storage.Run) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.runs = append(r.runs, run)
	return int64(len(r.runs)), nil
}

func newSession(store progress.Store, rec RunRecorder) *Session {
	return New(Options{
		Config:   config.Default(),
		Seed:     7,
		Profile:  "test",
		Store:    store,
		Recorder: rec,
	})
}

func winTimeline(t *testing.T, s *Session) {
	t.Helper()
	l := s.Level().(*timeline.Level)
	for i := 0; i < len(timeline.Stages) && !l.Completed(); i++ {
		if err := l.Advance(); err != nil {
			t.Fatalf("timeline Advance() error = %v", err)
		}
		s.Advance(700 * time.Millisecond)
	}
}

func winMaterials(t *testing.T, s *Session) {
	t.Helper()
	l := s.Level().(*materials.Level)
	for _, m := range materials.Minerals {
		for l.Extracted(m.ID) < 100 {
			if _, err := l.Extract(m.ID); err != nil {
				t.Fatalf("Extract(%q) error = %v", m.ID, err)
			}
		}
	}
	if err := l.AdvancePhase(); err != nil {
		t.Fatalf("AdvancePhase() to assembly error = %v", err)
	}
	for _, m := range materials.Minerals {
		l.SelectMineral(m.ID)
		if r, err := l.TapPart(m.Part); err != nil || r != core.MatchPlaced {
			t.Fatalf("TapPart(%q) = %v, %v", m.Part, r, err)
		}
	}
	s.Advance(5 * time.Second)
	if err := l.AdvancePhase(); err != nil {
		t.Fatalf("AdvancePhase() to end of life error = %v", err)
	}
	if err := l.Recycle(); err != nil {
		t.Fatalf("Recycle() error = %v", err)
	}
	s.Advance(3 * time.Second)
}

func winDopamine(t *testing.T, s *Session) {
	t.Helper()
	l := s.Level().(*dopamine.Level)
	if err := l.Start(); err != nil {
		t.Fatalf("dopamine Start() error = %v", err)
	}
	s.Advance(61 * time.Second)
}

func winAssembly(t *testing.T, s *Session) {
	t.Helper()
	l := s.Level().(*assembly.Level)
	for _, id := range l.Items() {
		if err := l.Select(id); err != nil {
			t.Fatalf("Select(%q) error = %v", id, err)
		}
		l.Tap(id)
	}
}

func winSignal(t *testing.T, s *Session) {
	t.Helper()
	l := s.Level().(*signal.Level)
	_ = l.Set(25)
	if ok, err := l.Confirm(); !ok || err != nil {
		t.Fatalf("Confirm() = %v, %v", ok, err)
	}
	s.Advance(3 * time.Second)
}

func TestFullAdventure(t *testing.T) {
	store := progress.NewMemoryStore()
	rec := &recorder{}
	s := newSession(store, rec)

	if s.View() != ViewWelcome {
		t.Fatalf("View() = %v, expected welcome", s.View())
	}
	s.Input(core.ActionConfirm)

	wins := []func(*testing.T, *Session){winTimeline, winMaterials, winDopamine, winAssembly, winSignal}
	for i, win := range wins {
		n := i + 1
		if s.View() != ViewLevel || s.Level() == nil || s.Level().Info().Number != n {
			t.Fatalf("expected level %d on display", n)
		}
		win(t, s)
		if !s.Level().Completed() {
			t.Fatalf("level %d not completed", n)
		}
		if !s.Progress().Completed(n) {
			t.Errorf("orchestrator missed the completion of level %d", n)
		}
		s.Input(core.ActionNext)
	}

	if s.View() != ViewFinal {
		t.Fatalf("View() = %v, expected final", s.View())
	}
	if s.Level() != nil {
		t.Error("no level should stay live on the final screen")
	}
	if got := s.Progress().CompletedLevels(); !slices.Equal(got, []int{1, 2, 3, 4, 5}) {
		t.Errorf("CompletedLevels() = %v", got)
	}

	scores, ok := s.Progress().Level3Scores()
	if !ok {
		t.Fatal("Level 3 scores should reach the orchestrator")
	}
	if len(rec.runs) != 1 {
		t.Fatalf("recorded %d runs, expected 1", len(rec.runs))
	}
	run := rec.runs[0]
	if run.Wellbeing != scores.Wellbeing || run.Dopamine != scores.Dopamine {
		t.Errorf("run %+v does not match scores %+v", run, scores)
	}
	if run.Profile != "test" || run.Tier == "" || run.RunID == "" {
		t.Errorf("run = %+v, expected profile, tier and ID", run)
	}
	if last, ok := s.LastRun(); !ok || last.RunID != run.RunID {
		t.Error("LastRun() should return the recorded run")
	}

	s.Input(core.ActionRestart)
	if s.View() != ViewWelcome || len(s.Progress().CompletedLevels()) != 0 {
		t.Error("restart should return to a blank welcome screen")
	}
	if data, _ := store.Load(); data != nil {
		t.Errorf("store = %s after restart, expected empty", data)
	}
}

func TestNavigationClosesLevels(t *testing.T) {
	s := newSession(nil, nil)

	if err := s.Navigate(3); err != nil {
		t.Fatalf("Navigate(3) error = %v", err)
	}
	l := s.Level().(*dopamine.Level)
	_ = l.Start()
	if s.clock.Pending() == 0 {
		t.Fatal("a running simulation should have timers")
	}

	_ = s.Navigate(4)
	if s.clock.Pending() != 0 {
		t.Errorf("Pending() = %d after leaving level 3, expected 0", s.clock.Pending())
	}
	s.Advance(2 * time.Minute)
	if _, ok := s.Progress().Level3Scores(); ok {
		t.Error("the closed simulation should never report scores")
	}
	if s.Progress().Completed(3) {
		t.Error("the closed simulation should never complete")
	}

	if err := s.Navigate(9); !errors.Is(err, progress.ErrInvalidLevel) {
		t.Errorf("Navigate(9) = %v, expected ErrInvalidLevel", err)
	}
	if s.Level().Info().Number != 4 {
		t.Error("an invalid navigation should keep the current level")
	}

	s.Input(core.ActionBack)
	if s.View() != ViewWelcome || s.Level() != nil {
		t.Error("esc should return to the welcome screen")
	}
}

func TestNavigateSameLevelKeepsState(t *testing.T) {
	s := newSession(nil, nil)
	_ = s.Navigate(5)
	l := s.Level().(*signal.Level)
	_ = l.Set(10)

	_ = s.Navigate(5)
	if s.Level() != l {
		t.Error("navigating to the level on display should keep it")
	}
}

func TestResumeSavedProgress(t *testing.T) {
	store := progress.NewMemoryStore()
	first := newSession(store, nil)
	first.Start()
	winTimeline(t, first)
	first.Input(core.ActionNext)
	first.Close()

	second := newSession(store, nil)
	if second.View() != ViewLevel || second.Level().Info().Number != 2 {
		t.Fatalf("resumed session should open level 2, got view %v", second.View())
	}
	if !second.Progress().Completed(1) {
		t.Error("level 1 should stay completed")
	}
	if second.ID() == first.ID() {
		t.Error("each session should get its own ID")
	}
}

func TestNextNeedsCompletion(t *testing.T) {
	s := newSession(nil, nil)
	s.Start()

	if s.Next() {
		t.Error("Next() should be ignored before the level is completed")
	}
	winTimeline(t, s)
	if !s.Next() {
		t.Error("Next() should move on after completion")
	}
	if s.Level().Info().Number != 2 {
		t.Errorf("level %d on display, expected 2", s.Level().Info().Number)
	}
}

func TestRecorderFailureIsLogged(t *testing.T) {
	rec := &recorder{err: errors.New("db locked")}
	s := newSession(nil, rec)
	_ = s.Navigate(3)
	winDopamine(t, s)

	if !s.Progress().Completed(3) {
		t.Error("a failed recording should not block the completion")
	}
	if _, ok := s.LastRun(); !ok {
		t.Error("the run should be kept in memory")
	}
}
