package carousel

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeSlide struct {
	active bool
	sets   int
}

func (s *fakeSlide) SetActive(active bool) {
	s.active = active
	s.sets++
}

type fakeControl struct {
	role   Role
	target int
	active bool
}

func (c *fakeControl) Role() Role        { return c.role }
func (c *fakeControl) SetTarget(id int)  { c.target = id }
func (c *fakeControl) Target() int       { return c.target }
func (c *fakeControl) SetActive(on bool) { c.active = on }

type fakeLayer struct {
	slides   []*fakeSlide
	dots     []*fakeControl
	prev     *fakeControl
	next     *fakeControl
	extraDot  bool
	wrongRole bool
	released  int
}

func newFakeLayer(n int) *fakeLayer {
	l := &fakeLayer{}
	for i := 0; i < n; i++ {
		l.slides = append(l.slides, &fakeSlide{})
	}
	return l
}

func (l *fakeLayer) Children() []Element {
	out := make([]Element, len(l.slides))
	for i, s := range l.slides {
		out[i] = s
	}
	return out
}

func (l *fakeLayer) Pagination(n int) []DotElement {
	if l.extraDot {
		n++
	}
	l.dots = nil
	out := make([]DotElement, n)
	for i := range out {
		d := &fakeControl{role: RoleDot, target: -1}
		l.dots = append(l.dots, d)
		out[i] = d
	}
	return out
}

func (l *fakeLayer) Control(role Role) Control {
	c := &fakeControl{role: role, target: -1}
	if l.wrongRole {
		c.role = RoleDot
	}
	if role == RolePrev {
		l.prev = c
	} else {
		l.next = c
	}
	return c
}

// ControlAt maps row 0 onto the controls: x=0 prev, x=1 next, x>=2 dots.
func (l *fakeLayer) ControlAt(x, y int) Control {
	if y != 0 {
		return nil
	}
	switch {
	case x == 0 && l.prev != nil:
		return l.prev
	case x == 1 && l.next != nil:
		return l.next
	case x >= 2 && x-2 < len(l.dots):
		return l.dots[x-2]
	}
	return nil
}

func (l *fakeLayer) Render() string { return "" }

func (l *fakeLayer) Release() {
	l.released++
	l.dots = nil
	l.prev, l.next = nil, nil
}

func (l *fakeLayer) activeSlides() []int {
	var ids []int
	for i, s := range l.slides {
		if s.active {
			ids = append(ids, i)
		}
	}
	return ids
}

func (l *fakeLayer) activeDots() []int {
	var ids []int
	for i, d := range l.dots {
		if d.active {
			ids = append(ids, i)
		}
	}
	return ids
}

type subscription struct {
	control Control
	handler Handler
}

type fakeEvents struct {
	next int
	subs map[Handle]subscription
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{subs: make(map[Handle]subscription)}
}

func (e *fakeEvents) Subscribe(c Control, h Handler) Handle {
	e.next++
	e.subs[Handle(e.next)] = subscription{control: c, handler: h}
	return Handle(e.next)
}

func (e *fakeEvents) Unsubscribe(h Handle) {
	delete(e.subs, h)
}

func (e *fakeEvents) Dispatch(c Control) tea.Cmd {
	var cmds []tea.Cmd
	for _, s := range e.subs {
		if s.control == c {
			cmds = append(cmds, s.handler())
		}
	}
	return tea.Batch(cmds...)
}

// virtualClock stands in for tea.Tick. Timers are registered when armed
// and fired in order by advanceTo.
type virtualClock struct {
	now    time.Duration
	timers []virtualTimer
}

type virtualTimer struct {
	at time.Duration
	fn func(time.Time) tea.Msg
}

func (v *virtualClock) tick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	v.timers = append(v.timers, virtualTimer{at: v.now + d, fn: fn})
	return func() tea.Msg { return nil }
}

// advanceTo fires every timer due at or before t, feeding the messages to c.
func (v *virtualClock) advanceTo(t time.Duration, c *Carousel) {
	for {
		idx := -1
		for i, tm := range v.timers {
			if tm.at <= t && (idx < 0 || tm.at < v.timers[idx].at) {
				idx = i
			}
		}
		if idx < 0 {
			break
		}
		tm := v.timers[idx]
		v.timers = append(v.timers[:idx], v.timers[idx+1:]...)
		v.now = tm.at
		c.Update(tm.fn(time.Unix(0, 0).Add(tm.at)))
	}
	v.now = t
}

func newTestCarousel(n int, opts Options) (*Carousel, *fakeLayer, *fakeEvents, *virtualClock) {
	layer := newFakeLayer(n)
	events := newFakeEvents()
	clock := &virtualClock{}
	c := New(layer, events, opts)
	c.SetLogger(nil)
	c.SetTick(clock.tick)
	return c, layer, events, clock
}
