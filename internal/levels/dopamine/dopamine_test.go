package dopamine

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/phone-secrets/internal/config"
	"github.com/vovakirdan/phone-secrets/internal/core"
	"github.com/vovakirdan/phone-secrets/internal/registry"
)

type harness struct {
	clock  *core.Scheduler
	level  *Level
	events []string
	scores core.Scores
}

func newHarness(mutate func(*config.Config)) *harness {
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	h := &harness{clock: core.NewScheduler()}
	h.level = New(registry.Env{
		Clock:  h.clock,
		Rand:   core.NewRand(7),
		Config: cfg,
		Hooks: registry.Hooks{
			OnComplete: func() { h.events = append(h.events, "complete") },
			OnNext:     func() { h.events = append(h.events, "next") },
			OnScores: func(s core.Scores) {
				h.events = append(h.events, "scores")
				h.scores = s
			},
		},
	})
	return h
}

// quiet disables the fake notifications so only gameplay timers run.
func quiet(c *config.Config) { c.Dopamine.NotifyChance = 0 }

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestStartResetsState(t *testing.T) {
	h := newHarness(quiet)
	if err := h.level.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	_, _ = h.level.Activate("gaming")
	h.clock.Advance(3 * time.Second)

	if err := h.level.Start(); err != nil {
		t.Fatalf("second Start() error = %v", err)
	}
	if h.level.Dopamine() != 50 || h.level.Wellbeing() != 70 || h.level.TimeLeft() != 60 {
		t.Errorf("state after Start = {%v, %v, %d}, expected {50, 70, 60}",
			h.level.Dopamine(), h.level.Wellbeing(), h.level.TimeLeft())
	}
	if h.level.Cooldown("gaming") != 0 {
		t.Errorf("Cooldown(gaming) = %d after restart, expected 0", h.level.Cooldown("gaming"))
	}
	d, w := h.level.History()
	if len(d) != 1 || d[0] != 50 || len(w) != 1 || w[0] != 70 {
		t.Errorf("History() = %v, %v; expected [50], [70]", d, w)
	}

	// Only one run worth of timers is active
	if n := h.level.timers.Len(); n != 3 {
		t.Errorf("timers = %d after restart, expected 3", n)
	}
}

func TestActivateRequiresPlaying(t *testing.T) {
	h := newHarness(quiet)
	if _, err := h.level.Activate("social"); err != ErrNotPlaying {
		t.Errorf("Activate() on intro = %v, expected ErrNotPlaying", err)
	}
	_ = h.level.Start()
	if _, err := h.level.Activate("doomscroll"); err != ErrUnknownActivity {
		t.Errorf("Activate(doomscroll) = %v, expected ErrUnknownActivity", err)
	}
}

func TestTickOrder(t *testing.T) {
	tests := []struct {
		name      string
		dopamine  float64
		wellbeing float64
	}{
		// Wellbeing branches on the decayed value: 36.4 -> 34.9 drains
		{"low after decay", 36.4, 70 - 0.3},
		{"normal", 50, 70 + 0.3},
		// 21 -> 19.5 is withdrawal
		{"withdrawal after decay", 21, 70 - 1.2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(quiet)
			_ = h.level.Start()
			h.level.dopamine.Set(tc.dopamine)
			h.clock.Advance(time.Second)

			if !almost(h.level.Dopamine(), tc.dopamine-1.5) {
				t.Errorf("Dopamine() = %v, expected %v", h.level.Dopamine(), tc.dopamine-1.5)
			}
			if !almost(h.level.Wellbeing(), tc.wellbeing) {
				t.Errorf("Wellbeing() = %v, expected %v", h.level.Wellbeing(), tc.wellbeing)
			}
			if h.level.TimeLeft() != 59 {
				t.Errorf("TimeLeft() = %d, expected 59", h.level.TimeLeft())
			}
		})
	}
}

func TestGaugesClamp(t *testing.T) {
	h := newHarness(quiet)
	_ = h.level.Start()
	h.level.dopamine.Set(0.5)
	h.level.wellbeing.Set(0.5)
	h.clock.Advance(time.Second)
	if h.level.Dopamine() != 0 || h.level.Wellbeing() != 0 {
		t.Errorf("gauges = %v, %v; expected clamped to 0", h.level.Dopamine(), h.level.Wellbeing())
	}

	_, _ = h.level.Activate("gaming")
	_, _ = h.level.Activate("social")
	_, _ = h.level.Activate("video")
	_, _ = h.level.Activate("notifs")
	if h.level.Dopamine() != 90 {
		t.Errorf("Dopamine() = %v, expected 90", h.level.Dopamine())
	}
	_, _ = h.level.Activate("walk")
	for i := 0; i < 4; i++ {
		_, _ = h.level.Activate("walk")
	}
	if d := h.level.Dopamine(); d < 0 || d > 100 {
		t.Errorf("Dopamine() = %v out of range", d)
	}
}

func TestMultiClickAndCooldown(t *testing.T) {
	h := newHarness(quiet)
	_ = h.level.Start()

	for i := 1; i <= 3; i++ {
		fired, err := h.level.Activate("walk")
		if err != nil || fired {
			t.Fatalf("press %d: fired = %v, err = %v; expected partial progress", i, fired, err)
		}
		if h.level.Progress("walk") != i {
			t.Errorf("Progress(walk) = %d, expected %d", h.level.Progress("walk"), i)
		}
	}
	if h.level.Wellbeing() != 70 {
		t.Errorf("partial presses changed wellbeing to %v", h.level.Wellbeing())
	}

	fired, _ := h.level.Activate("walk")
	if !fired {
		t.Fatal("fourth press should activate walk")
	}
	if h.level.Wellbeing() != 85 || h.level.Dopamine() != 55 {
		t.Errorf("gauges = %v/%v, expected 55/85", h.level.Dopamine(), h.level.Wellbeing())
	}
	if h.level.Progress("walk") != 0 || h.level.Cooldown("walk") != 6 {
		t.Errorf("Progress = %d, Cooldown = %d; expected 0, 6", h.level.Progress("walk"), h.level.Cooldown("walk"))
	}
	if _, realUses := h.level.Uses(); realUses != 1 {
		t.Errorf("real uses = %d, expected 1", realUses)
	}

	// Presses during cooldown are ignored entirely
	if fired, _ := h.level.Activate("walk"); fired || h.level.Progress("walk") != 0 {
		t.Error("press during cooldown should be ignored")
	}

	h.clock.Advance(6 * time.Second)
	if h.level.Cooldown("walk") != 0 {
		t.Errorf("Cooldown(walk) = %d after 6 ticks, expected 0", h.level.Cooldown("walk"))
	}
	_, _ = h.level.Activate("walk")
	if h.level.Progress("walk") != 1 {
		t.Errorf("Progress(walk) = %d after cooldown, expected 1", h.level.Progress("walk"))
	}
}

func TestScreenCrash(t *testing.T) {
	h := newHarness(quiet)
	_ = h.level.Start()

	_, _ = h.level.Activate("social") // 50 -> 75, not a crash
	if h.level.Crashes() != 0 {
		t.Fatalf("Crashes() = %d, expected 0", h.level.Crashes())
	}

	walk := RealActivities[0]
	for i := 0; i < walk.Clicks; i++ {
		_, _ = h.level.Activate(walk.ID) // real activities never crash
	}
	if h.level.Crashes() != 0 {
		t.Fatalf("Crashes() = %d after real activity, expected 0", h.level.Crashes())
	}

	_, _ = h.level.Activate("notifs") // before = 80 > 70
	if h.level.Crashes() != 1 {
		t.Errorf("Crashes() = %d, expected exactly 1", h.level.Crashes())
	}
	if h.level.Notice() != crashMessages[0] {
		t.Errorf("Notice() = %q, expected the first crash message", h.level.Notice())
	}

	// Cool down so the overheat crash does not replace the notice
	h.level.dopamine.Set(50)
	h.level.syncOverheat()
	h.clock.Advance(3 * time.Second)
	if h.level.Notice() != "" {
		t.Errorf("Notice() = %q after 3s, expected empty", h.level.Notice())
	}
}

func TestCrashMessagesEscalate(t *testing.T) {
	h := newHarness(quiet)
	_ = h.level.Start()
	var seen []string
	for i := 0; i < 6; i++ {
		h.level.dopamine.Set(75)
		h.level.cooldowns["notifs"] = 0
		_, _ = h.level.Activate("notifs")
		seen = append(seen, h.level.Notice())
	}

	for i, msg := range seen {
		want := crashMessages[core.Min(i, len(crashMessages)-1)]
		if msg != want {
			t.Errorf("crash %d notice = %q, expected %q", i+1, msg, want)
		}
	}
}

func TestOverheatCrashOnce(t *testing.T) {
	h := newHarness(quiet)
	_ = h.level.Start()
	h.clock.Advance(500 * time.Millisecond)

	_, _ = h.level.Activate("gaming") // 50 -> 80
	_, _ = h.level.Activate("social") // screen crash, 80 -> 100
	if h.level.Crashes() != 1 || !h.level.OverheatPending() {
		t.Fatalf("Crashes() = %d, OverheatPending() = %v; expected 1, true", h.level.Crashes(), h.level.OverheatPending())
	}

	// Re-entering the hot zone while a crash is pending adds no second timer
	h.clock.Advance(time.Second)
	timers := h.level.timers.Len()
	_, _ = h.level.Activate("video")
	if h.level.timers.Len() != timers {
		t.Errorf("timers changed from %d to %d, expected the pending crash to be reused", timers, h.level.timers.Len())
	}
	crashes := h.level.Crashes()

	h.clock.Advance(1900 * time.Millisecond) // t = 3.4s
	if h.level.Crashes() != crashes {
		t.Fatalf("overheat fired early")
	}

	h.clock.Advance(100 * time.Millisecond) // t = 3.5s
	if h.level.Crashes() != crashes+1 {
		t.Errorf("Crashes() = %d, expected %d", h.level.Crashes(), crashes+1)
	}
	// 100 after video, two decays, then -30
	if !almost(h.level.Dopamine(), 67) {
		t.Errorf("Dopamine() = %v, expected 67", h.level.Dopamine())
	}
	if h.level.Notice() != overheatMessage {
		t.Errorf("Notice() = %q, expected the overheat message", h.level.Notice())
	}

	h.clock.Advance(10 * time.Second)
	if h.level.Crashes() != crashes+1 {
		t.Errorf("Crashes() = %d, overheat fired more than once", h.level.Crashes())
	}
}

func TestOverheatCancelledWhenCooling(t *testing.T) {
	h := newHarness(quiet)
	_ = h.level.Start()
	h.level.dopamine.Set(87)
	h.level.syncOverheat()
	if !h.level.OverheatPending() {
		t.Fatal("overheat should be pending above 85")
	}

	h.clock.Advance(2 * time.Second) // 87 -> 85.5 -> 84
	if h.level.OverheatPending() {
		t.Error("overheat should be cancelled once dopamine drops to 85 or below")
	}
	h.clock.Advance(5 * time.Second)
	if h.level.Crashes() != 0 {
		t.Errorf("Crashes() = %d, expected 0", h.level.Crashes())
	}
}

func TestRunEndsAndReports(t *testing.T) {
	h := newHarness(quiet)
	_ = h.level.Start()

	h.clock.Advance(59 * time.Second)
	if h.level.Stage() != StagePlaying || h.level.TimeLeft() != 1 {
		t.Fatalf("Stage() = %v, TimeLeft() = %d at 59s", h.level.Stage(), h.level.TimeLeft())
	}

	h.clock.Advance(time.Second)
	if h.level.Stage() != StageResults {
		t.Fatalf("Stage() = %v at 60s, expected results", h.level.Stage())
	}
	if strings.Join(h.events, ",") != "scores,complete" {
		t.Errorf("events = %v, expected scores then complete", h.events)
	}

	// 10 recoveries, 10 mild drains, 39 withdrawal drains
	if h.scores.Wellbeing != 23 || h.scores.Dopamine != 0 {
		t.Errorf("scores = %+v, expected {23, 0}", h.scores)
	}
	res, ok := h.level.Results()
	if !ok {
		t.Fatal("Results() not available")
	}
	if res.Tier != TierImbalanced {
		t.Errorf("Tier = %v, expected imbalanced", res.Tier)
	}
	if res.PeakDopamine != 50 || res.Crashes != 0 {
		t.Errorf("Peak = %v, Crashes = %d", res.PeakDopamine, res.Crashes)
	}
	if res.Dopamine.StdDev <= 0 {
		t.Errorf("dopamine volatility = %+v, expected a spread", res.Dopamine)
	}

	// No timer survives the run
	if h.clock.Pending() != 0 {
		t.Errorf("Pending() = %d after results, expected 0", h.clock.Pending())
	}
	score := h.level.Dopamine()
	h.clock.Advance(time.Minute)
	if h.level.Dopamine() != score || len(h.events) != 2 {
		t.Error("state changed after the run ended")
	}

	if err := h.level.Start(); err != ErrFinished {
		t.Errorf("Start() after results = %v, expected ErrFinished", err)
	}
	h.level.Input(core.ActionNext)
	if h.events[len(h.events)-1] != "next" {
		t.Error("next should reach the orchestrator after results")
	}
}

func TestOverheatDoesNotFireIntoResults(t *testing.T) {
	h := newHarness(func(c *config.Config) {
		quiet(c)
		c.Dopamine.Duration = 2
	})
	_ = h.level.Start()
	h.level.dopamine.Set(100)
	h.level.syncOverheat()

	h.clock.Advance(5 * time.Second)
	if h.level.Stage() != StageResults {
		t.Fatalf("Stage() = %v, expected results", h.level.Stage())
	}
	if h.level.Crashes() != 0 {
		t.Errorf("overheat crash leaked into results: Crashes() = %d", h.level.Crashes())
	}
	if h.scores.Dopamine != 99 {
		t.Errorf("Dopamine score = %d, expected 99 (one decay)", h.scores.Dopamine)
	}
}

func TestHistorySampling(t *testing.T) {
	h := newHarness(quiet)
	_ = h.level.Start()
	h.clock.Advance(4 * time.Second)
	if d, _ := h.level.History(); len(d) != 1 {
		t.Errorf("history has %d samples after 4 ticks, expected 1", len(d))
	}
	h.clock.Advance(time.Second)
	d, _ := h.level.History()
	if len(d) != 2 || !almost(d[1], 42.5) {
		t.Errorf("History() = %v after 5 ticks, expected [50 42.5]", d)
	}

	h.clock.Advance(50 * time.Second)
	if d, _ := h.level.History(); len(d) != 12 {
		t.Errorf("History() returned %d samples, expected the window of 12", len(d))
	}
}

func TestTemptationsAndTips(t *testing.T) {
	h := newHarness(func(c *config.Config) { c.Dopamine.NotifyChance = 1 })
	_ = h.level.Start()

	h.clock.Advance(8 * time.Second)
	if h.level.Popup() == "" {
		t.Fatal("a notification should pop up at 8s")
	}
	h.clock.Advance(3 * time.Second)
	if h.level.Popup() != "" {
		t.Errorf("Popup() = %q after 3s, expected empty", h.level.Popup())
	}

	h.clock.Advance(time.Second) // t = 12s
	if h.level.Tip() != Tips[1] {
		t.Errorf("Tip() = %q at 12s, expected the second tip", h.level.Tip())
	}
}

func TestWithdrawalAndGrayscale(t *testing.T) {
	h := newHarness(quiet)
	_ = h.level.Start()

	tests := []struct {
		dopamine  float64
		withdrawn bool
		gray      float64
	}{
		{50, false, 0},
		{20, false, 0},
		{19, true, 5},
		{10, true, 50},
		{0, true, 100},
	}
	for _, tc := range tests {
		h.level.dopamine.Set(tc.dopamine)
		if h.level.Withdrawal() != tc.withdrawn || h.level.Grayscale() != tc.gray {
			t.Errorf("at %v: Withdrawal() = %v, Grayscale() = %v; expected %v, %v",
				tc.dopamine, h.level.Withdrawal(), h.level.Grayscale(), tc.withdrawn, tc.gray)
		}
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		wellbeing float64
		want      Tier
	}{
		{100, TierExcellent},
		{60, TierExcellent},
		{59.9, TierCorrect},
		{40, TierCorrect},
		{20, TierImbalanced},
		{19.9, TierSevere},
		{0, TierSevere},
	}
	for _, tc := range tests {
		if got := TierFor(tc.wellbeing); got != tc.want {
			t.Errorf("TierFor(%v) = %v, expected %v", tc.wellbeing, got, tc.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	v := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if !almost(v.Mean, 5) {
		t.Errorf("Mean = %v, expected 5", v.Mean)
	}
	if math.Abs(v.StdDev-math.Sqrt(32.0/7)) > 1e-9 {
		t.Errorf("StdDev = %v, expected %v", v.StdDev, math.Sqrt(32.0/7))
	}
	if v := Summarize([]float64{42}); v.Mean != 42 || v.StdDev != 0 {
		t.Errorf("Summarize of one sample = %+v", v)
	}
	if v := Summarize(nil); v != (Volatility{}) {
		t.Errorf("Summarize(nil) = %+v", v)
	}
}

func TestCloseStopsRun(t *testing.T) {
	h := newHarness(nil)
	_ = h.level.Start()
	h.level.Close()
	h.clock.Advance(2 * time.Minute)
	if h.level.TimeLeft() != 60 || h.clock.Pending() != 0 {
		t.Errorf("TimeLeft() = %d, Pending() = %d after Close", h.level.TimeLeft(), h.clock.Pending())
	}
}

func TestInputAndRender(t *testing.T) {
	h := newHarness(quiet)
	s := core.NewScreen(80, 24)

	h.level.Render(s)
	if !strings.Contains(s.String(), "[enter] start") {
		t.Error("intro should offer to start")
	}

	h.level.Input(core.ActionConfirm)
	if h.level.Stage() != StagePlaying {
		t.Fatalf("Stage() = %v after confirm, expected playing", h.level.Stage())
	}
	h.level.Input(core.ActionConfirm) // first catalog entry is social
	if h.level.Dopamine() != 75 {
		t.Errorf("Dopamine() = %v, expected 75", h.level.Dopamine())
	}
	h.level.Input(core.ActionRight)
	h.level.Input(core.ActionConfirm) // first real activity, one press of four
	if h.level.Progress(RealActivities[0].ID) != 1 {
		t.Errorf("Progress(%s) = %d, expected 1", RealActivities[0].ID, h.level.Progress(RealActivities[0].ID))
	}

	s.Clear()
	h.level.Render(s)
	out := s.String()
	if !strings.Contains(out, "cooldown 3s") || !strings.Contains(out, "1/4 presses") {
		t.Errorf("playing view missing cooldown or progress:\n%s", out)
	}
}
