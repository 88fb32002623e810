// Package core provides fundamental types and utilities for the game platform.
// It contains no external dependencies (especially no Bubble Tea) to keep level
// logic pure and testable.
package core

import (
	"container/heap"
	"time"
)

// TimerID identifies a scheduled callback. The zero value is never issued.
type TimerID uint64

// Scheduler is a virtual-time timer queue.
// Nothing happens until Advance is called, which makes every level
// deterministic under test: advance the clock, assert the state.
//
// Scheduler is not safe for concurrent use. Each session owns one scheduler
// and drives it from a single goroutine (the Bubble Tea update loop).
type Scheduler struct {
	now    time.Duration
	seq    uint64
	queue  timerQueue
	active map[TimerID]*timer
}

type timer struct {
	id       TimerID
	due      time.Duration
	interval time.Duration // 0 for one-shot timers
	seq      uint64        // Tie-breaker for timers due at the same instant
	fn       func()
	index    int
}

// NewScheduler creates a scheduler at virtual time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{
		active: make(map[TimerID]*timer),
	}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once, d from now.
// A non-positive delay fires on the next Advance.
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	return s.add(d, 0, fn)
}

// Every schedules fn to run every d, first firing d from now.
// Panics if d is not positive.
func (s *Scheduler) Every(d time.Duration, fn func()) TimerID {
	if d <= 0 {
		panic("core: Every requires a positive interval")
	}
	return s.add(d, d, fn)
}

func (s *Scheduler) add(delay, interval time.Duration, fn func()) TimerID {
	s.seq++
	t := &timer{
		id:       TimerID(s.seq),
		due:      s.now + delay,
		interval: interval,
		seq:      s.seq,
		fn:       fn,
	}
	heap.Push(&s.queue, t)
	s.active[t.id] = t
	return t.id
}

// Cancel stops a pending timer. Returns false if the timer already fired
// (one-shot) or was cancelled before.
func (s *Scheduler) Cancel(id TimerID) bool {
	t, ok := s.active[id]
	if !ok {
		return false
	}
	delete(s.active, id)
	heap.Remove(&s.queue, t.index)
	return true
}

// Active reports whether the timer is still pending.
func (s *Scheduler) Active(id TimerID) bool {
	_, ok := s.active[id]
	return ok
}

// Pending returns the number of pending timers.
func (s *Scheduler) Pending() int {
	return len(s.active)
}

// Advance moves virtual time forward by d, firing every timer that comes due
// in chronological order. Callbacks may schedule or cancel timers; new timers
// due within the window fire during the same call.
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := s.now + d

	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.due > target {
			break
		}
		heap.Pop(&s.queue)
		s.now = next.due

		if next.interval > 0 {
			next.due += next.interval
			s.seq++
			next.seq = s.seq
			heap.Push(&s.queue, next)
		} else {
			delete(s.active, next.id)
		}

		next.fn()
	}

	s.now = target
}

// Group creates a timer group bound to this scheduler.
func (s *Scheduler) Group() *Group {
	return &Group{sched: s, ids: make(map[TimerID]struct{})}
}

// Group tracks the timers owned by one state machine so they can all be
// cancelled when it leaves its active state.
type Group struct {
	sched *Scheduler
	ids   map[TimerID]struct{}
}

// After schedules a one-shot timer owned by the group.
func (g *Group) After(d time.Duration, fn func()) TimerID {
	var id TimerID
	id = g.sched.After(d, func() {
		delete(g.ids, id)
		fn()
	})
	g.ids[id] = struct{}{}
	return id
}

// Every schedules a periodic timer owned by the group.
func (g *Group) Every(d time.Duration, fn func()) TimerID {
	id := g.sched.Every(d, fn)
	g.ids[id] = struct{}{}
	return id
}

// Cancel stops one timer of the group.
func (g *Group) Cancel(id TimerID) bool {
	if _, ok := g.ids[id]; !ok {
		return false
	}
	delete(g.ids, id)
	return g.sched.Cancel(id)
}

// Stop cancels every pending timer of the group.
func (g *Group) Stop() {
	for id := range g.ids {
		g.sched.Cancel(id)
	}
	clear(g.ids)
}

// Len returns the number of pending timers in the group.
func (g *Group) Len() int {
	return len(g.ids)
}

// timerQueue is a min-heap ordered by due time, then scheduling order.
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
