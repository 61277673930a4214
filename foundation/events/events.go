// Package events allows goroutines to subscribe to and receive the event
// messages produced by the ledger.
package events

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// messageBuffer is how many messages a subscriber can fall behind before new
// messages are dropped for it. A websocket write can take a while.
const messageBuffer = 100

// Events maintains the set of subscriber channels keyed by subscription id.
type Events struct {
	mu   sync.RWMutex
	subs map[string]chan string
	shut bool
}

// New constructs an Events value ready for subscriptions.
func New() *Events {
	return &Events{
		subs: make(map[string]chan string),
	}
}

// Subscribe registers a new subscriber and returns its id and the channel
// to receive messages on. The channel is closed by Unsubscribe or Shutdown.
func (evt *Events) Subscribe() (string, <-chan string) {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan string, messageBuffer)

	// Nothing will ever be published after a shutdown.
	if evt.shut {
		close(ch)
		return id, ch
	}

	evt.subs[id] = ch
	return id, ch
}

// Unsubscribe closes and removes the channel for the specified id.
func (evt *Events) Unsubscribe(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.subs[id]
	if !exists {
		return fmt.Errorf("subscription %q does not exist", id)
	}

	delete(evt.subs, id)
	close(ch)
	return nil
}

// Publish sends the message to every subscriber. Publish never blocks on a
// slow subscriber, the message is dropped for that subscriber instead.
func (evt *Events) Publish(msg string) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, ch := range evt.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Shutdown closes and removes every subscriber channel.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.subs {
		delete(evt.subs, id)
		close(ch)
	}
	evt.shut = true
}
