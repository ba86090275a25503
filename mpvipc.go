package mpvipc

import (
	"context"
	"encoding/json"
	"net"
	"strconv"
)

// Mpv is the caller-facing handle for one mpv connection. It holds only
// channels to the IPC goroutine, so it may be copied and shared freely
// across goroutines.
//
// The connection is a shared resource: Disconnect from any copy terminates
// it for every other copy and ends every subscriber's event stream.
type Mpv struct {
	actor *ipc
}

// Connect dials mpv's unix socket at the given path and starts the IPC
// goroutine. The socket must already exist; launching and supervising the
// mpv process is the caller's responsibility (but see [Launch]).
func Connect(ctx context.Context, socketPath string) (*Mpv, error) {
	return ConnectWithOptions(ctx, socketPath, DefaultOptions())
}

// ConnectWithOptions is Connect with explicit tuning options.
func ConnectWithOptions(ctx context.Context, socketPath string, opts Options) (*Mpv, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, &TransportError{Op: "dial", Err: err}
	}
	return ConnectSocket(conn, opts), nil
}

// ConnectSocket starts the IPC goroutine on an already-established
// connection. Useful for testing and for non-standard transports; the
// connection must speak newline-framed JSON in both directions.
func ConnectSocket(conn net.Conn, opts Options) *Mpv {
	opts.validate()
	actor := newIPC(conn, opts)
	opts.Logger.Debugf("starting mpv ipc handler")
	go actor.run()
	return &Mpv{actor: actor}
}

// Disconnect shuts the connection down. The IPC goroutine drops the socket
// and every subscriber's event stream ends; all subsequent calls on any
// copy of this handle fail with [ErrDisconnected].
func (m *Mpv) Disconnect(ctx context.Context) error {
	_, err := m.submit(ctx, &request{exit: true, reply: make(chan result, 1)})
	return err
}

// exchange runs one command to completion: enqueue, then await the reply.
func (m *Mpv) exchange(ctx context.Context, command []any) (any, error) {
	return m.submit(ctx, &request{command: command, reply: make(chan result, 1)})
}

// submit enqueues a request onto the bounded command queue and awaits its
// reply slot. Both waits are cancellable; abandoning the await leaves the
// command to complete into the buffered, unobserved slot.
func (m *Mpv) submit(ctx context.Context, req *request) (any, error) {
	select {
	case m.actor.requests <- req:
	case <-m.actor.done:
		return nil, ErrDisconnected
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case res := <-req.reply:
		return res.data, res.err
	case <-m.actor.done:
		// The actor may have fulfilled this slot just before exiting.
		select {
		case res := <-req.reply:
			return res.data, res.err
		default:
			return nil, ErrDisconnected
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Subscribe returns a stream of events positioned at "now": events
// published before the subscription are never replayed. The stream ends
// when it is closed or the connection shuts down.
func (m *Mpv) Subscribe() *EventStream {
	return m.actor.events.subscribe()
}

// Stats returns a snapshot of connection counters.
func (m *Mpv) Stats() Stats { return m.actor.metrics.snapshot() }

// LogStats writes the current counters to the connection's logger.
func (m *Mpv) LogStats() { m.actor.metrics.logStats(m.actor.logger) }

// RunCommandRaw sends an arbitrary command with string arguments and
// returns the decoded response payload, nil if mpv sent none. Use this for
// commands the typed surface does not cover.
func (m *Mpv) RunCommandRaw(ctx context.Context, command string, args ...string) (any, error) {
	raw := make([]any, 0, len(args)+1)
	raw = append(raw, command)
	for _, arg := range args {
		raw = append(raw, arg)
	}
	return m.exchange(ctx, raw)
}

func (m *Mpv) runCommandIgnoreValue(ctx context.Context, command string, args ...string) error {
	_, err := m.RunCommandRaw(ctx, command, args...)
	return err
}

// GetPropertyValue retrieves a property as raw decoded JSON (numbers come
// back as json.Number). The value is nil when the property is unavailable.
func (m *Mpv) GetPropertyValue(ctx context.Context, property string) (any, error) {
	return m.exchange(ctx, []any{"get_property", property})
}

// GetProperty retrieves a property as a dynamic [Data] value, nil when the
// property is unavailable.
func (m *Mpv) GetProperty(ctx context.Context, property string) (Data, error) {
	value, err := m.GetPropertyValue(ctx, property)
	if err != nil || value == nil {
		return nil, err
	}
	return DataFromJSON(value)
}

// SetProperty sets a property. The value is embedded in the command as raw
// JSON, so booleans and numbers keep their types on the wire.
func (m *Mpv) SetProperty(ctx context.Context, property string, value any) error {
	_, err := m.exchange(ctx, []any{"set_property", property, value})
	return err
}

// ObserveProperty asks mpv to push a property-change event whenever the
// named property changes, tagged with the given subscription id. Watch the
// changes through [Mpv.Subscribe].
func (m *Mpv) ObserveProperty(ctx context.Context, id uint64, property string) error {
	_, err := m.exchange(ctx, []any{"observe_property", id, property})
	return err
}

// UnobserveProperty undoes ObserveProperty for the given subscription id.
func (m *Mpv) UnobserveProperty(ctx context.Context, id uint64) error {
	_, err := m.exchange(ctx, []any{"unobserve_property", id})
	return err
}

// GetPropertyString retrieves a string property. The second return value
// reports whether the property was available.
func (m *Mpv) GetPropertyString(ctx context.Context, property string) (string, bool, error) {
	value, err := m.GetPropertyValue(ctx, property)
	if err != nil || value == nil {
		return "", false, err
	}
	s, ok := value.(string)
	if !ok {
		return "", false, &ValueShapeMismatchError{Expected: "string", Received: value}
	}
	return s, true, nil
}

// GetPropertyBool retrieves a boolean property. The second return value
// reports whether the property was available.
func (m *Mpv) GetPropertyBool(ctx context.Context, property string) (bool, bool, error) {
	value, err := m.GetPropertyValue(ctx, property)
	if err != nil || value == nil {
		return false, false, err
	}
	b, ok := value.(bool)
	if !ok {
		return false, false, &ValueShapeMismatchError{Expected: "bool", Received: value}
	}
	return b, true, nil
}

// GetPropertyFloat retrieves a numeric property as float64. The second
// return value reports whether the property was available.
func (m *Mpv) GetPropertyFloat(ctx context.Context, property string) (float64, bool, error) {
	value, err := m.GetPropertyValue(ctx, property)
	if err != nil || value == nil {
		return 0, false, err
	}
	n, ok := value.(json.Number)
	if !ok {
		return 0, false, &ValueShapeMismatchError{Expected: "float64", Received: value}
	}
	f, err := n.Float64()
	if err != nil {
		return 0, false, &UnsupportedNumberError{Literal: n.String()}
	}
	return f, true, nil
}

// GetPropertyUint retrieves an unsigned integer property. The second
// return value reports whether the property was available.
func (m *Mpv) GetPropertyUint(ctx context.Context, property string) (uint64, bool, error) {
	value, err := m.GetPropertyValue(ctx, property)
	if err != nil || value == nil {
		return 0, false, err
	}
	n, ok := value.(json.Number)
	if !ok {
		return 0, false, &ValueShapeMismatchError{Expected: "uint", Received: value}
	}
	u, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil {
		return 0, false, &ValueShapeMismatchError{Expected: "uint", Received: value}
	}
	return u, true, nil
}

// GetPropertyMap retrieves a map-valued property (e.g. "metadata"), nil
// when the property is unavailable.
func (m *Mpv) GetPropertyMap(ctx context.Context, property string) (Map, error) {
	data, err := m.GetProperty(ctx, property)
	if err != nil || data == nil {
		return nil, err
	}
	mp, ok := data.(Map)
	if !ok {
		return nil, &ValueShapeMismatchError{Expected: "map", Received: data}
	}
	return mp, nil
}
