package auth

import (
	"sync"
	"time"
)

type EventType string

const (
	SignedUp  EventType = "signed_up"
	SignedIn  EventType = "signed_in"
	SignedOut EventType = "signed_out"
)

// Event is a change in a user's session state.
type Event struct {
	Type   EventType `json:"event"`
	UserID string    `json:"user_id"`
	At     time.Time `json:"at"`
}

// Broker fans session events out to subscribers. Handlers run synchronously
// on the publishing goroutine and must not block.
type Broker struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Event)
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]func(Event))}
}

// Subscribe registers fn and returns the function that removes it.
// Calling the returned function more than once is safe.
func (b *Broker) Subscribe(fn func(Event)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

func (b *Broker) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	b.mu.RLock()
	handlers := make([]func(Event), 0, len(b.subs))
	for _, fn := range b.subs {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(ev)
	}
}

// Subscribers reports how many handlers are registered.
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
