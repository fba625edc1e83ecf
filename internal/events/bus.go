package events

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// EventListener processes events
type EventListener interface {
	HandleEvent(event Event) error
	Priority() int
	ID() string
}

// Bus fans committed game events out to presentation listeners
type Bus struct {
	listeners map[EventType][]EventListener
	mu        sync.RWMutex
	log       zerolog.Logger
}

// NewBus creates a new event bus. A nil logger disables bus logging.
func NewBus(logger *zerolog.Logger) *Bus {
	b := &Bus{
		listeners: make(map[EventType][]EventListener),
		log:       zerolog.Nop(),
	}
	if logger != nil {
		b.log = logger.With().Str("component", "event_bus").Logger()
	}
	return b
}

// Subscribe adds a listener for an event type, or for every type with EventTypeAny
func (b *Bus) Subscribe(eventType EventType, listener EventListener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[eventType] = append(b.listeners[eventType], listener)
	sortByPriority(b.listeners[eventType])

	b.log.Debug().
		Str("listener", listener.ID()).
		Str("event_type", string(eventType)).
		Int("priority", listener.Priority()).
		Msg("subscribed")
}

// Unsubscribe removes a listener
func (b *Bus) Unsubscribe(eventType EventType, listenerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	listeners := b.listeners[eventType]
	for i, l := range listeners {
		if l.ID() != listenerID {
			continue
		}
		listeners[i] = listeners[len(listeners)-1]
		b.listeners[eventType] = listeners[:len(listeners)-1]
		sortByPriority(b.listeners[eventType])

		b.log.Debug().Str("listener", listenerID).Str("event_type", string(eventType)).Msg("unsubscribed")
		return
	}
}

// Emit sends an event to its listeners and to wildcard listeners, lowest priority first
func (b *Bus) Emit(event Event) error {
	b.mu.RLock()
	listeners := make([]EventListener, 0, len(b.listeners[event.Type])+len(b.listeners[EventTypeAny]))
	listeners = append(listeners, b.listeners[event.Type]...)
	listeners = append(listeners, b.listeners[EventTypeAny]...)
	b.mu.RUnlock()

	sortByPriority(listeners)

	for _, listener := range listeners {
		if err := listener.HandleEvent(event); err != nil {
			return fmt.Errorf("listener %s failed: %w", listener.ID(), err)
		}
	}

	return nil
}

// Publish emits events in order and stops at the first listener failure
func (b *Bus) Publish(evts []Event) error {
	for _, e := range evts {
		if err := b.Emit(e); err != nil {
			return err
		}
	}
	return nil
}

// Clear removes all listeners
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = make(map[EventType][]EventListener)
}

func sortByPriority(listeners []EventListener) {
	sort.SliceStable(listeners, func(i, j int) bool {
		return listeners[i].Priority() < listeners[j].Priority()
	})
}
