package mpvipc

const (
	// DefaultQueueSize is the default command queue capacity. Enqueueing
	// callers suspend once the queue is full; this is the library's only
	// backpressure mechanism.
	DefaultQueueSize = 100

	// DefaultEventBuffer is the default per-subscriber event buffer.
	DefaultEventBuffer = 100
)

// Overflow selects what happens when a subscriber's event buffer is full.
type Overflow int

const (
	// OverflowDropOldest evicts the oldest unread event to make room.
	// Slow subscribers silently lose events but never stall the
	// connection (at-most-once, newest-N delivery).
	OverflowDropOldest Overflow = iota

	// OverflowBlock suspends event delivery until the subscriber catches
	// up. This backpressures the whole connection: a stalled subscriber
	// stalls command processing too.
	OverflowBlock
)

// Options tunes a connection. The zero value is usable; out-of-range
// values are normalized to defaults.
type Options struct {
	// QueueSize is the command queue capacity.
	QueueSize int

	// EventBuffer is the per-subscriber event buffer capacity.
	EventBuffer int

	// Overflow is the event buffer overflow policy.
	Overflow Overflow

	// Logger receives diagnostics (dropped lines, parse failures). Nil
	// disables logging.
	Logger Logger
}

// DefaultOptions returns the defaults used by Connect.
func DefaultOptions() Options {
	return Options{
		QueueSize:   DefaultQueueSize,
		EventBuffer: DefaultEventBuffer,
		Overflow:    OverflowDropOldest,
	}
}

func (o *Options) validate() {
	if o.QueueSize < 1 {
		o.QueueSize = DefaultQueueSize
	}
	if o.EventBuffer < 1 {
		o.EventBuffer = DefaultEventBuffer
	}
	if o.Overflow != OverflowBlock {
		o.Overflow = OverflowDropOldest
	}
	if o.Logger == nil {
		o.Logger = nopLogger{}
	}
}
