package mpvipc

import "sync"

// Stats is a snapshot of connection counters.
type Stats struct {
	CommandsTotal    int64
	CommandsRejected int64
	TransportErrors  int64
	EventsPublished  int64
	EventsDropped    int64
	ParseErrors      int64
}

// metrics tracks basic connection metrics. All fields are guarded by mu;
// the actor and the fanout update them, callers read snapshots.
type metrics struct {
	mu sync.RWMutex
	s  Stats
}

func (m *metrics) recordCommand(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.s.CommandsTotal++
	switch err.(type) {
	case nil:
	case *CommandRejectedError:
		m.s.CommandsRejected++
	case *TransportError:
		m.s.TransportErrors++
	}
}

func (m *metrics) recordEvent() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.s.EventsPublished++
}

func (m *metrics) recordDropped() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.s.EventsDropped++
}

func (m *metrics) recordParseError() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.s.ParseErrors++
}

func (m *metrics) snapshot() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.s
}

// logStats logs current counters to the given sink.
func (m *metrics) logStats(logger Logger) {
	s := m.snapshot()
	logger.Infof("mpv ipc stats commands_total=%d commands_rejected=%d transport_errors=%d events_published=%d events_dropped=%d parse_errors=%d",
		s.CommandsTotal,
		s.CommandsRejected,
		s.TransportErrors,
		s.EventsPublished,
		s.EventsDropped,
		s.ParseErrors)
}
