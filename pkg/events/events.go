// Package events publishes network mutations to a message bus.
//
// Every successful mutation made through the HTTP API produces an [Event].
// A [Publisher] delivers it; [NATSPublisher] sends JSON messages on the
// subject "<prefix>.<type>", e.g. "socialgraph.friendship.added", so
// consumers can subscribe to one kind of change or to "socialgraph.>" for
// all of them.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type identifies the kind of mutation.
type Type string

// Event types.
const (
	PersonAdded       Type = "person.added"
	PersonRemoved     Type = "person.removed"
	FriendshipAdded   Type = "friendship.added"
	FriendshipRemoved Type = "friendship.removed"
)

// Event describes one mutation. People holds the person for person events
// and both ends, in call order, for friendship events.
type Event struct {
	ID     string    `json:"id"`
	Type   Type      `json:"type"`
	People []string  `json:"people"`
	At     time.Time `json:"at"`
}

// New creates an event with a fresh ID and the current time.
func New(t Type, people ...string) Event {
	return Event{
		ID:     uuid.NewString(),
		Type:   t,
		People: people,
		At:     time.Now().UTC(),
	}
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// NopPublisher discards every event.
type NopPublisher struct{}

// Publish does nothing.
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Close does nothing.
func (NopPublisher) Close() error { return nil }

// Recorder keeps published events in memory. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Publish records ev.
func (r *Recorder) Publish(_ context.Context, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Close does nothing.
func (r *Recorder) Close() error { return nil }

var (
	_ Publisher = NopPublisher{}
	_ Publisher = (*Recorder)(nil)
)
