package events

import (
	"sync"

	"github.com/rs/zerolog"
)

// ListenerFunc adapts a function into an EventListener
type ListenerFunc struct {
	ListenerID       string
	ListenerPriority int
	Fn               func(Event) error
}

func (l *ListenerFunc) HandleEvent(event Event) error { return l.Fn(event) }
func (l *ListenerFunc) Priority() int                 { return l.ListenerPriority }
func (l *ListenerFunc) ID() string                    { return l.ListenerID }

// Recorder keeps every event it receives, in order
type Recorder struct {
	mu     sync.Mutex
	id     string
	events []Event
}

func NewRecorder(id string) *Recorder {
	return &Recorder{id: id}
}

func (r *Recorder) HandleEvent(event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) Priority() int { return 1000 }
func (r *Recorder) ID() string    { return r.id }

// Events returns a copy of the recorded events
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// LogListener writes every event to a zerolog logger at info level
type LogListener struct {
	log zerolog.Logger
}

func NewLogListener(logger zerolog.Logger) *LogListener {
	return &LogListener{log: logger.With().Str("component", "narrator").Logger()}
}

func (l *LogListener) HandleEvent(event Event) error {
	l.log.Info().
		Str("event", string(event.Type)).
		Str("action_id", event.ActionID).
		Str("actor", event.Actor).
		Str("target", event.Target).
		Msg(event.Message())
	return nil
}

func (l *LogListener) Priority() int { return 100 }
func (l *LogListener) ID() string    { return "log" }
