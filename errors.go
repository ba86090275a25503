package mpvipc

import (
	"errors"
	"fmt"
)

// ErrDisconnected is returned for any call made after the connection has
// been shut down, either by Disconnect or by a transport failure.
var ErrDisconnected = errors.New("mpv connection closed")

// TransportError reports an I/O failure on the mpv socket. The connection
// is not usable afterwards; recovery is the caller's responsibility.
type TransportError struct {
	Op  string // "dial", "write" or "read"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("mpv socket %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolParseError reports a line from mpv that could not be decoded as a
// JSON object. On the event path the line is dropped; on the command path it
// fails only the command that was waiting for a response.
type ProtocolParseError struct {
	Line string
	Err  error
}

func (e *ProtocolParseError) Error() string {
	return fmt.Sprintf("parsing mpv message %q: %v", e.Line, e.Err)
}

func (e *ProtocolParseError) Unwrap() error { return e.Err }

// CommandRejectedError is returned when mpv answers a command with an
// "error" string other than "success" or "property unavailable". Message
// holds mpv's answer verbatim.
type CommandRejectedError struct {
	Command []any
	Message string
}

func (e *CommandRejectedError) Error() string {
	return fmt.Sprintf("mpv rejected command %v: %s", e.Command, e.Message)
}

// ValueShapeMismatchError reports a value whose shape does not match what a
// named property or typed accessor requires.
type ValueShapeMismatchError struct {
	Expected string
	Received any
}

func (e *ValueShapeMismatchError) Error() string {
	return fmt.Sprintf("mpv sent a value with an unexpected type: expected %s, received %#v", e.Expected, e.Received)
}

// MissingFieldError reports a required key absent from a decoded container.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing expected %q field in mpv message", e.Field)
}

// UnsupportedNumberError reports a JSON number that is representable
// neither as an unsigned 64-bit integer, nor as -1, nor as a finite double.
type UnsupportedNumberError struct {
	Literal string
}

func (e *UnsupportedNumberError) Error() string {
	return fmt.Sprintf("unsupported numeric value %q in mpv message", e.Literal)
}
