package mpvipc

import (
	"testing"
	"time"
)

func TestFanoutSubscribeAtNow(t *testing.T) {
	f := newFanout(4, OverflowDropOldest, new(metrics))

	f.publish(Event{Kind: EventIdle})
	stream := f.subscribe()
	defer stream.Close()
	f.publish(Event{Kind: EventSeek})

	// Only events published after the subscription arrive.
	event := <-stream.C
	if event.Kind != EventSeek {
		t.Errorf("got %q, want %q", event.Kind, EventSeek)
	}
	select {
	case event := <-stream.C:
		t.Errorf("unexpected extra event %q", event.Kind)
	default:
	}
}

func TestFanoutDropOldest(t *testing.T) {
	m := new(metrics)
	f := newFanout(2, OverflowDropOldest, m)

	stream := f.subscribe()
	defer stream.Close()

	f.publish(Event{Kind: EventStartFile})
	f.publish(Event{Kind: EventPause})
	f.publish(Event{Kind: EventUnpause})

	// The oldest unread event is gone, the newest two remain in order.
	if event := <-stream.C; event.Kind != EventPause {
		t.Errorf("first: got %q, want %q", event.Kind, EventPause)
	}
	if event := <-stream.C; event.Kind != EventUnpause {
		t.Errorf("second: got %q, want %q", event.Kind, EventUnpause)
	}
	if dropped := m.snapshot().EventsDropped; dropped != 1 {
		t.Errorf("dropped: got %d, want 1", dropped)
	}
}

func TestFanoutIndependentSubscribers(t *testing.T) {
	f := newFanout(2, OverflowDropOldest, new(metrics))

	slow := f.subscribe()
	defer slow.Close()
	fast := f.subscribe()
	defer fast.Close()

	f.publish(Event{Kind: EventStartFile})
	if event := <-fast.C; event.Kind != EventStartFile {
		t.Fatalf("fast: got %q", event.Kind)
	}

	// The slow subscriber overflowing must not lose events for the fast one.
	f.publish(Event{Kind: EventPause})
	f.publish(Event{Kind: EventUnpause})
	f.publish(Event{Kind: EventSeek})

	if event := <-fast.C; event.Kind != EventUnpause {
		t.Errorf("fast after overflow: got %q, want %q", event.Kind, EventUnpause)
	}
	if event := <-slow.C; event.Kind != EventUnpause {
		t.Errorf("slow: got %q, want %q", event.Kind, EventUnpause)
	}
}

func TestFanoutClose(t *testing.T) {
	f := newFanout(4, OverflowDropOldest, new(metrics))

	stream := f.subscribe()
	f.publish(Event{Kind: EventShutdown})
	f.close()

	// Buffered events drain before the closed channel is observed.
	event, ok := <-stream.C
	if !ok || event.Kind != EventShutdown {
		t.Errorf("got (%q, %v), want buffered shutdown event", event.Kind, ok)
	}
	if _, ok := <-stream.C; ok {
		t.Error("stream still open after close")
	}

	// Subscribing after close yields an already-ended stream.
	late := f.subscribe()
	if _, ok := <-late.C; ok {
		t.Error("late subscription received an event")
	}
}

func TestFanoutBlockingDelivery(t *testing.T) {
	f := newFanout(1, OverflowBlock, new(metrics))

	stream := f.subscribe()
	defer stream.Close()

	delivered := make(chan struct{})
	go func() {
		f.publish(Event{Kind: EventPause})
		f.publish(Event{Kind: EventUnpause})
		close(delivered)
	}()

	// Nothing is lost under backpressure: both events arrive in order.
	if event := <-stream.C; event.Kind != EventPause {
		t.Errorf("first: got %q, want %q", event.Kind, EventPause)
	}
	if event := <-stream.C; event.Kind != EventUnpause {
		t.Errorf("second: got %q, want %q", event.Kind, EventUnpause)
	}
	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("publisher still suspended after delivery")
	}
}

func TestFanoutBlockingCloseDetaches(t *testing.T) {
	f := newFanout(1, OverflowBlock, new(metrics))

	// A subscriber that stopped reading leaves the publisher suspended on
	// its full buffer.
	stream := f.subscribe()
	published := make(chan struct{})
	go func() {
		f.publish(Event{Kind: EventPause})
		f.publish(Event{Kind: EventUnpause})
		close(published)
	}()
	time.Sleep(50 * time.Millisecond)

	// Closing the stream must detach it even so, and release the publisher.
	closed := make(chan struct{})
	go func() {
		stream.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close never returned with a suspended publisher")
	}
	select {
	case <-published:
	case <-time.After(time.Second):
		t.Fatal("publisher still suspended after the subscriber detached")
	}

	// The fanout stays usable for everyone else.
	other := f.subscribe()
	defer other.Close()
	f.publish(Event{Kind: EventSeek})
	if event := <-other.C; event.Kind != EventSeek {
		t.Errorf("got %q, want %q", event.Kind, EventSeek)
	}
}

func TestFanoutUnsubscribe(t *testing.T) {
	f := newFanout(4, OverflowDropOldest, new(metrics))

	stream := f.subscribe()
	stream.Close()
	stream.Close() // idempotent

	if _, ok := <-stream.C; ok {
		t.Error("stream still open after Close")
	}
	f.publish(Event{Kind: EventIdle}) // must not panic on the closed sub
}
