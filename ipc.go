package mpvipc

import (
	"bufio"
	"net"
)

// ipc is the single goroutine with exclusive ownership of the socket. It
// multiplexes concurrent callers over one transport: requests are taken
// from a shared queue one at a time, and every line read off the socket is
// either an event (fanned out to subscribers) or the response to the one
// command currently in flight. Correlation is positional (mpv's request_id
// is ignored), which is sound because exactly one command is ever in
// flight at a time.
type ipc struct {
	conn     net.Conn
	lines    chan line
	requests chan *request
	events   *fanout
	metrics  *metrics
	logger   Logger
	done     chan struct{}

	// readErr is the transport failure observed by the reader pump, kept
	// so later commands fail with the original cause.
	readErr error
}

// request pairs one command with its reply slot. The reply channel is
// buffered so fulfillment never blocks and an abandoned caller leaks
// nothing beyond the already-allocated slot.
type request struct {
	command []any
	exit    bool
	reply   chan result
}

type result struct {
	data any // decoded response payload, nil when absent
	err  error
}

type line struct {
	text []byte
	err  error
}

func newIPC(conn net.Conn, opts Options) *ipc {
	m := new(metrics)
	return &ipc{
		conn:     conn,
		lines:    make(chan line),
		requests: make(chan *request, opts.QueueSize),
		events:   newFanout(opts.EventBuffer, opts.Overflow, m),
		metrics:  m,
		logger:   opts.Logger,
		done:     make(chan struct{}),
	}
}

// readLines pumps newline-framed lines from the socket into the line
// channel. It is the only reader of the socket; the actor is the only
// writer. On any read failure it reports the error and stops; transport
// failures are fatal and never retried.
func (a *ipc) readLines() {
	defer close(a.lines)

	reader := bufio.NewReader(a.conn)
	for {
		text, err := reader.ReadBytes('\n')
		if len(text) > 0 && err == nil {
			select {
			case a.lines <- line{text: text}:
			case <-a.done:
				// Actor gone; nobody will ever receive again.
				return
			}
			continue
		}
		if err != nil {
			select {
			case a.lines <- line{err: err}:
			case <-a.done:
			}
			return
		}
	}
}

// run is the actor loop. Each iteration services whichever is ready first:
// a line from the socket or a queued request. It returns when an exit
// request arrives or is never serviced again once both sources are gone.
func (a *ipc) run() {
	go a.readLines()

	defer close(a.done)
	defer a.events.close()
	defer a.conn.Close()

	for {
		select {
		case ln, ok := <-a.lines:
			if !ok {
				// Transport gone. Stop selecting on the closed channel
				// and keep failing requests until someone sends exit.
				a.lines = nil
				continue
			}
			a.handleLine(ln)
		case req := <-a.requests:
			if req.exit {
				req.reply <- result{}
				return
			}
			res := a.transact(req.command)
			a.metrics.recordCommand(res.err)
			req.reply <- res
		}
	}
}

// handleLine processes a line received while no command is in flight.
// Parse failures are logged and dropped, never attributed to a command.
// Non-event lines with nothing outstanding are protocol noise.
func (a *ipc) handleLine(ln line) {
	if ln.err != nil {
		a.readErr = ln.err
		a.logger.Errorf("reading from mpv socket failed: %v", ln.err)
		return
	}

	obj, err := decodeLine(ln.text)
	if err != nil {
		a.metrics.recordParseError()
		a.logger.Errorf("dropping unparseable line from mpv: %v", err)
		return
	}
	if !isEvent(obj) {
		a.logger.Debugf("dropping unsolicited non-event line from mpv")
		return
	}
	a.publishEvent(obj)
}

// transact writes one command envelope and reads lines until the first
// non-event line, which is its response. Events received while waiting are
// still published, never dropped just because a command is in flight.
func (a *ipc) transact(command []any) result {
	if a.lines == nil {
		return result{err: &TransportError{Op: "write", Err: a.brokenErr()}}
	}

	payload, err := encodeRequest(command)
	if err != nil {
		return result{err: err}
	}

	a.logger.Debugf("sending command to mpv: %s", payload)
	if _, err := a.conn.Write(payload); err != nil {
		return result{err: &TransportError{Op: "write", Err: err}}
	}

	for {
		ln, ok := <-a.lines
		if !ok {
			a.lines = nil
			return result{err: &TransportError{Op: "read", Err: a.brokenErr()}}
		}
		if ln.err != nil {
			a.readErr = ln.err
			return result{err: &TransportError{Op: "read", Err: ln.err}}
		}

		obj, err := decodeLine(ln.text)
		if err != nil {
			// The response must be parseable; a malformed line here fails
			// only this command.
			a.metrics.recordParseError()
			return result{err: err}
		}
		if isEvent(obj) {
			a.publishEvent(obj)
			continue
		}

		data, err := parseResponse(obj, command)
		return result{data: data, err: err}
	}
}

func (a *ipc) brokenErr() error {
	if a.readErr != nil {
		return a.readErr
	}
	return ErrDisconnected
}

// publishEvent decodes and fans out one event line. Failures here are
// logged and the line discarded; no caller is waiting on an event, so they
// never propagate.
func (a *ipc) publishEvent(obj map[string]any) {
	event, err := parseEvent(obj)
	if err != nil {
		a.metrics.recordParseError()
		a.logger.Errorf("dropping undecodable event from mpv: %v", err)
		return
	}
	a.metrics.recordEvent()
	a.events.publish(event)
}
