package carousel

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastSchedulerID int64

func nextSchedulerID() int {
	return int(atomic.AddInt64(&lastSchedulerID, 1))
}

// TickFunc builds a one-shot timer command. tea.Tick satisfies it.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// AdvanceMsg is delivered when an auto-advance timer fires.
type AdvanceMsg struct {
	ID  int
	At  time.Time
	tag int
}

// Scheduler owns the single auto-advance timer. Bubble Tea ticks cannot be
// stopped once issued, so a timer is cancelled by bumping its tag: a fired
// tick whose tag no longer matches is dropped.
type Scheduler struct {
	id      int
	tag     int
	pending bool
	tick    TickFunc
}

// NewScheduler returns an idle scheduler. A nil tick uses tea.Tick.
func NewScheduler(tick TickFunc) *Scheduler {
	if tick == nil {
		tick = tea.Tick
	}
	return &Scheduler{id: nextSchedulerID(), tick: tick}
}

// Reset cancels the pending timer and arms a new one delay from now.
func (s *Scheduler) Reset(delay time.Duration) tea.Cmd {
	s.tag++
	s.pending = true
	id, tag := s.id, s.tag
	return s.tick(delay, func(t time.Time) tea.Msg {
		return AdvanceMsg{ID: id, At: t, tag: tag}
	})
}

// Cancel drops the pending timer, if any.
func (s *Scheduler) Cancel() {
	if !s.pending {
		return
	}
	s.tag++
	s.pending = false
}

// Pending reports whether a timer is armed.
func (s *Scheduler) Pending() bool { return s.pending }

// Accept consumes msg if it is the live timer of this scheduler.
func (s *Scheduler) Accept(msg AdvanceMsg) bool {
	if !s.pending || msg.ID != s.id || msg.tag != s.tag {
		return false
	}
	s.pending = false
	return true
}
