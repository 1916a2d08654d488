package ui

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/tumble/pkg/carousel"
)

type subscription struct {
	control carousel.Control
	handler carousel.Handler
}

// EventBus routes control clicks to subscribed handlers.
type EventBus struct {
	last carousel.Handle
	subs map[carousel.Handle]subscription
}

// NewEventBus returns an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subs: make(map[carousel.Handle]subscription)}
}

// Subscribe registers h for clicks on c.
func (b *EventBus) Subscribe(c carousel.Control, h carousel.Handler) carousel.Handle {
	b.last++
	b.subs[b.last] = subscription{control: c, handler: h}
	return b.last
}

// Unsubscribe removes a subscription; unknown handles are ignored.
func (b *EventBus) Unsubscribe(h carousel.Handle) {
	delete(b.subs, h)
}

// Dispatch clicks c, running its handlers in subscription order.
func (b *EventBus) Dispatch(c carousel.Control) tea.Cmd {
	var handles []carousel.Handle
	for h, s := range b.subs {
		if s.control == c {
			handles = append(handles, h)
		}
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	var cmds []tea.Cmd
	for _, h := range handles {
		// A handler may unsubscribe others.
		if s, ok := b.subs[h]; ok {
			cmds = append(cmds, s.handler())
		}
	}
	return tea.Batch(cmds...)
}

// Len returns the number of live subscriptions.
func (b *EventBus) Len() int { return len(b.subs) }
