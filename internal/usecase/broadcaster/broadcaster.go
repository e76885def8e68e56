package broadcaster

import (
	"sync"

	"github.com/google/uuid"

	orderbookv1 "github.com/subhdotsol/CEX-superdevs/internal/domain/orderbook/v1"
)

// DefaultSubscriberBuffer is the per-subscriber queue capacity used when the
// configured value is zero or negative.
const DefaultSubscriberBuffer = 100

// Subscriber is one independent consumer of depth updates. Its channel is
// owned by the broadcaster: it is closed on Unsubscribe and must not be
// closed by the consumer.
type Subscriber struct {
	id string
	ch chan orderbookv1.Depth
}

// ID returns the subscriber's unique id.
func (s *Subscriber) ID() string {
	return s.id
}

// C returns the channel depth updates are delivered on. It is closed when
// the subscriber is removed.
func (s *Subscriber) C() <-chan orderbookv1.Depth {
	return s.ch
}

// Broadcaster fans out depth snapshots to any number of subscribers without
// ever blocking the publisher. Delivery is lossy by design: each subscriber
// has a bounded queue, and when it is full the oldest queued update is
// dropped in favour of the new one. Depth frames are full snapshots, so a
// dropped frame is superseded by the next delivered one.
type Broadcaster struct {
	mu          sync.Mutex
	subscribers map[string]*Subscriber
	buffer      int
}

// New creates a broadcaster whose subscribers each get a queue of the given
// capacity.
func New(buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	return &Broadcaster{
		subscribers: make(map[string]*Subscriber),
		buffer:      buffer,
	}
}

// Subscribe registers a new consumer and returns its handle.
func (b *Broadcaster) Subscribe() *Subscriber {
	sub := &Subscriber{
		id: uuid.NewString(),
		ch: make(chan orderbookv1.Depth, b.buffer),
	}

	b.mu.Lock()
	b.subscribers[sub.id] = sub
	b.mu.Unlock()

	return sub
}

// Unsubscribe removes a consumer and closes its channel, releasing any
// queued updates. Unsubscribing an already-removed subscriber is a no-op.
func (b *Broadcaster) Unsubscribe(sub *Subscriber) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subscribers[sub.id]; !ok {
		return
	}
	delete(b.subscribers, sub.id)
	close(sub.ch)
}

// Publish hands the snapshot to every live subscriber. A full subscriber
// queue drops its oldest entry rather than blocking; publishing with zero
// subscribers is a cheap no-op.
func (b *Broadcaster) Publish(depth orderbookv1.Depth) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subscribers {
		select {
		case sub.ch <- depth:
		default:
			// Queue full: evict the oldest update, then retry once. The
			// consumer may have drained the channel in between, so the
			// retry needs its own default case.
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- depth:
			default:
			}
		}
	}
}

// Len returns the number of live subscribers.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.subscribers)
}

// Close removes every subscriber and closes their channels.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, sub := range b.subscribers {
		delete(b.subscribers, id)
		close(sub.ch)
	}
}
