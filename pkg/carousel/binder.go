package carousel

import tea "github.com/charmbracelet/bubbletea"

type transitioner interface {
	TransitionTo(id int) (Element, tea.Cmd)
}

// Binder subscribes the navigation controls and remembers exactly the
// handles it created so Unbind can release them.
type Binder struct {
	events  Events
	handles []Handle
}

// NewBinder returns a binder attaching to events.
func NewBinder(events Events) *Binder {
	return &Binder{events: events}
}

// Bind attaches prev/next handlers when controls are given and one handler
// per dot. Dots get their own ID published once here; prev/next targets are
// republished by the state machine on every transition.
func (b *Binder) Bind(t transitioner, prev, next Control, dots *DotRegistry) {
	if prev != nil {
		b.handles = append(b.handles, b.events.Subscribe(prev, followTarget(t, prev)))
	}
	if next != nil {
		b.handles = append(b.handles, b.events.Subscribe(next, followTarget(t, next)))
	}
	for _, dot := range dots.All() {
		dot.Element.SetTarget(dot.ID)
		b.handles = append(b.handles, b.events.Subscribe(dot.Element, followTarget(t, dot.Element)))
	}
}

// Unbind releases every handle created by Bind. Calling it again is a no-op.
func (b *Binder) Unbind() {
	for _, h := range b.handles {
		b.events.Unsubscribe(h)
	}
	b.handles = nil
}

// Bound returns the number of live subscriptions.
func (b *Binder) Bound() int { return len(b.handles) }

// followTarget reads the control's target at click time, not bind time.
func followTarget(t transitioner, c Control) Handler {
	return func() tea.Cmd {
		_, cmd := t.TransitionTo(c.Target())
		return cmd
	}
}
