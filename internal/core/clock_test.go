package core

import (
	"testing"
	"time"
)

func TestSchedulerAfterFiresOnce(t *testing.T) {
	s := NewScheduler()
	calls := 0
	s.After(3*time.Second, func() { calls++ })

	s.Advance(2999 * time.Millisecond)
	if calls != 0 {
		t.Fatalf("timer fired early: calls = %d", calls)
	}

	s.Advance(time.Millisecond)
	if calls != 1 {
		t.Errorf("calls = %d, expected 1", calls)
	}

	s.Advance(10 * time.Second)
	if calls != 1 {
		t.Errorf("one-shot timer fired again: calls = %d", calls)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", s.Pending())
	}
}

func TestSchedulerEvery(t *testing.T) {
	s := NewScheduler()
	var at []time.Duration
	s.Every(time.Second, func() { at = append(at, s.Now()) })

	s.Advance(3500 * time.Millisecond)

	expected := []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}
	if len(at) != len(expected) {
		t.Fatalf("fired %d times, expected %d", len(at), len(expected))
	}
	for i := range expected {
		if at[i] != expected[i] {
			t.Errorf("firing %d at %v, expected %v", i, at[i], expected[i])
		}
	}
	if s.Now() != 3500*time.Millisecond {
		t.Errorf("Now() = %v, expected 3.5s", s.Now())
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	fired := false
	id := s.After(time.Second, func() { fired = true })

	if !s.Cancel(id) {
		t.Error("Cancel() = false for a pending timer")
	}
	if s.Cancel(id) {
		t.Error("Cancel() = true for an already cancelled timer")
	}

	s.Advance(2 * time.Second)
	if fired {
		t.Error("cancelled timer fired")
	}
}

func TestSchedulerCancelFromCallback(t *testing.T) {
	s := NewScheduler()
	count := 0
	var id TimerID
	id = s.Every(time.Second, func() {
		count++
		if count == 2 {
			s.Cancel(id)
		}
	})

	s.Advance(5 * time.Second)
	if count != 2 {
		t.Errorf("periodic timer fired %d times after self-cancel, expected 2", count)
	}
}

func TestSchedulerSameInstantOrder(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.After(time.Second, func() { order = append(order, "a") })
	s.After(time.Second, func() { order = append(order, "b") })
	s.After(500*time.Millisecond, func() { order = append(order, "first") })

	s.Advance(time.Second)

	want := []string{"first", "a", "b"}
	for i := range want {
		if i >= len(order) || order[i] != want[i] {
			t.Fatalf("order = %v, expected %v", order, want)
		}
	}
}

func TestSchedulerNestedScheduling(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.After(time.Second, func() {
		s.After(500*time.Millisecond, func() { fired = true })
	})

	s.Advance(2 * time.Second)
	if !fired {
		t.Error("timer scheduled from a callback inside the window did not fire")
	}
}

func TestSchedulerEveryPanicsOnZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Every(0) should panic")
		}
	}()
	NewScheduler().Every(0, func() {})
}

func TestGroupStop(t *testing.T) {
	s := NewScheduler()
	g := s.Group()
	other := 0
	owned := 0

	g.Every(time.Second, func() { owned++ })
	g.After(2*time.Second, func() { owned++ })
	s.Every(time.Second, func() { other++ })

	s.Advance(time.Second)
	if owned != 1 {
		t.Fatalf("owned = %d, expected 1", owned)
	}

	g.Stop()
	if g.Len() != 0 {
		t.Errorf("Len() = %d after Stop, expected 0", g.Len())
	}

	s.Advance(5 * time.Second)
	if owned != 1 {
		t.Errorf("group timers fired after Stop: owned = %d", owned)
	}
	if other != 6 {
		t.Errorf("foreign timer fired %d times, expected 6", other)
	}
}

func TestGroupForgetsFiredOneShots(t *testing.T) {
	s := NewScheduler()
	g := s.Group()
	g.After(time.Second, func() {})

	s.Advance(time.Second)
	if g.Len() != 0 {
		t.Errorf("Len() = %d after one-shot fired, expected 0", g.Len())
	}
}
