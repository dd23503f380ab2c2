package input

import (
	"context"
	"sync"
)

// Script is a Source replaying a fixed list of events. It never blocks.
type Script struct {
	mu     sync.Mutex
	events []Event
	pos    int
}

// NewScript returns a Script yielding events in order.
func NewScript(events ...Event) *Script {
	return &Script{events: events}
}

// Next implements Source.
func (s *Script) Next(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return Event{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos >= len(s.events) {
		return Event{}, ErrScriptExhausted
	}
	e := s.events[s.pos]
	s.pos++
	return e, nil
}

// Append adds events to the end of the script.
func (s *Script) Append(events ...Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
}

// Remaining returns the number of unread events.
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events) - s.pos
}

// Consumed returns the number of events read so far.
func (s *Script) Consumed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}
