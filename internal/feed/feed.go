package feed

import (
	"context"
	"sync"
	"time"
)

// Op describes what happened to a document.
type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
)

// Change is one live-query delivery: a snapshot of a document that was
// written to a collection.
type Change struct {
	Collection string    `json:"collection"`
	Op         Op        `json:"op"`
	DocumentID string    `json:"document_id"`
	Timestamp  time.Time `json:"timestamp"`
	Data       any       `json:"data,omitempty"`
}

// CancelFunc detaches a subscriber.
type CancelFunc func()

// Feed is the explicit change-feed abstraction: services publish document
// changes, subscribers receive them as a channel of snapshots. Delivery is
// best-effort; a subscriber that falls behind drops changes and re-syncs
// from the store on reconnect.
type Feed interface {
	Publish(ctx context.Context, change Change)
	Subscribe(collection string) (<-chan Change, CancelFunc)
}

const subscriberBuffer = 16

// Broker is the in-process Feed implementation.
type Broker struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]chan Change
}

// NewBroker creates an in-memory feed.
func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[int]chan Change)}
}

// Publish fans the change out to all subscribers of its collection without
// blocking; full subscriber buffers drop the change.
func (b *Broker) Publish(_ context.Context, change Change) {
	if change.Timestamp.IsZero() {
		change.Timestamp = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs[change.Collection] {
		select {
		case ch <- change:
		default:
		}
	}
}

// Subscribe registers a listener for one collection.
func (b *Broker) Subscribe(collection string) (<-chan Change, CancelFunc) {
	ch := make(chan Change, subscriberBuffer)

	b.mu.Lock()
	if b.subs[collection] == nil {
		b.subs[collection] = make(map[int]chan Change)
	}
	id := b.next
	b.next++
	b.subs[collection][id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[collection][id]; ok {
			delete(b.subs[collection], id)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}
