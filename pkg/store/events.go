package store

import (
	"github.com/griddeck/griddeck/pkg/grid"
	"github.com/griddeck/griddeck/pkg/observability"
)

// Event names a category of state change. Listeners subscribe by event.
type Event string

// Change events emitted by the store.
const (
	EventWidgetAdded    Event = "widgetAdded"
	EventWidgetUpdated  Event = "widgetUpdated"
	EventWidgetRemoved  Event = "widgetRemoved"
	EventWidgetMoved    Event = "widgetMoved"
	EventWidgetResized  Event = "widgetResized"
	EventWidgetToggled  Event = "widgetToggled"
	EventThemeChanged   Event = "themeChanged"
	EventGridUpdated    Event = "gridUpdated"
	EventSave           Event = "save"
	EventReset          Event = "reset"
	EventLayoutImported Event = "layoutImported"
)

// Change carries the payload of an emitted event: the affected widget for
// widget-scoped events, or the relevant slice of state for the rest. Unused
// fields are zero.
type Change struct {
	Event  Event
	Widget *Widget
	Theme  Theme
	Grid   *grid.Config
	State  *State
}

// Listener receives change notifications. Listeners run synchronously on
// the mutating goroutine, in registration order. A panicking listener is
// recovered and logged; delivery continues with the next listener.
type Listener func(Change)

// subscription pairs a listener with a registration id for removal.
type subscription struct {
	id int
	fn Listener
}

// Subscribe registers fn for the named event and returns an unsubscribe
// function. Listeners for the same event fire in registration order.
func (s *Store) Subscribe(event Event, fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextListenerID++
	id := s.nextListenerID
	s.listeners[event] = append(s.listeners[event], subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.listeners[event]
		for i, sub := range subs {
			if sub.id == id {
				s.listeners[event] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// emit delivers a change to all listeners of its event. Must be called
// without holding s.mu so listeners can re-enter the store.
func (s *Store) emit(ch Change) {
	s.mu.Lock()
	subs := make([]subscription, len(s.listeners[ch.Event]))
	copy(subs, s.listeners[ch.Event])
	s.mu.Unlock()

	for _, sub := range subs {
		s.deliver(ch, sub)
	}
}

// deliver invokes one listener, recovering and logging any panic so the
// remaining listeners still receive the change.
func (s *Store) deliver(ch Change, sub subscription) {
	defer func() {
		if r := recover(); r != nil {
			observability.Store().OnListenerPanic(string(ch.Event), r)
			if s.logger != nil {
				s.logger.Error("change listener panicked", "event", ch.Event, "panic", r)
			}
		}
	}()
	sub.fn(ch)
}
