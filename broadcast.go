package mpvipc

import "sync"

// fanout delivers events from the actor to any number of subscribers.
// Each subscriber gets its own bounded buffer; the overflow policy decides
// whether a full buffer evicts the oldest unread event or suspends the
// publisher. The actor is the only publisher.
type fanout struct {
	mu       sync.Mutex
	subs     map[int]*subscription
	nextID   int
	buffer   int
	overflow Overflow
	metrics  *metrics
	closed   bool
}

// subscription pairs a subscriber's buffer with a cancel signal the
// publisher selects against, so a blocking send can never hold the mutex
// against a detaching subscriber.
type subscription struct {
	ch        chan Event
	cancelled chan struct{}
}

func newFanout(buffer int, overflow Overflow, m *metrics) *fanout {
	return &fanout{
		subs:     make(map[int]*subscription),
		buffer:   buffer,
		overflow: overflow,
		metrics:  m,
	}
}

// EventStream receives events from one subscription. Events arrive in the
// exact order they were read from the socket, starting from the moment of
// subscription; nothing is replayed. C is closed when the stream is
// cancelled or the connection shuts down.
type EventStream struct {
	C <-chan Event

	cancel func()
}

// Close cancels the subscription. Events already buffered remain readable
// until C is drained.
func (s *EventStream) Close() { s.cancel() }

func (f *fanout) subscribe() *EventStream {
	f.mu.Lock()
	defer f.mu.Unlock()

	sub := &subscription{
		ch:        make(chan Event, f.buffer),
		cancelled: make(chan struct{}),
	}
	if f.closed {
		close(sub.ch)
		return &EventStream{C: sub.ch, cancel: func() {}}
	}

	id := f.nextID
	f.nextID++
	f.subs[id] = sub

	var once sync.Once
	return &EventStream{C: sub.ch, cancel: func() {
		// Signal first, without the mutex: a publisher suspended on this
		// subscriber's full buffer must unblock before unsubscribe can
		// take the lock.
		once.Do(func() { close(sub.cancelled) })
		f.unsubscribe(id)
	}}
}

func (f *fanout) unsubscribe(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if sub, ok := f.subs[id]; ok {
		delete(f.subs, id)
		close(sub.ch)
	}
}

func (f *fanout) publish(event Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	for _, sub := range f.subs {
		if f.overflow == OverflowBlock {
			select {
			case sub.ch <- event:
			case <-sub.cancelled:
				// Subscriber is detaching; stop delivering to it.
			}
			continue
		}
		for {
			select {
			case sub.ch <- event:
			default:
				// Buffer full: evict the oldest unread event and retry.
				// Publishing is serialized under mu, so the retry always
				// succeeds on the next round.
				select {
				case <-sub.ch:
					f.metrics.recordDropped()
				default:
				}
				continue
			}
			break
		}
	}
}

// close terminates every subscriber's stream. Subscribers observe this as
// their channel closing after any buffered events are drained.
func (f *fanout) close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	for id, sub := range f.subs {
		delete(f.subs, id)
		close(sub.ch)
	}
}
