package mpvipc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// docs: https://mpv.io/manual/stable/#json-ipc

// Wire framing is one complete JSON document per line, newline-terminated,
// in both directions.

const (
	statusSuccess     = "success"
	statusUnavailable = "property unavailable"
)

type ipcRequest struct {
	Command []any `json:"command"` // verb first, args as raw JSON values

	RequestID int  `json:"request_id,omitempty"`
	Async     bool `json:"async,omitempty"`
}

// encodeRequest serializes a command envelope as a single newline-terminated
// line. Non-string arguments (booleans, numbers) are embedded as raw JSON,
// not stringified.
func encodeRequest(command []any) ([]byte, error) {
	payload, err := json.Marshal(ipcRequest{Command: command})
	if err != nil {
		return nil, fmt.Errorf("encoding mpv command: %w", err)
	}
	return append(payload, '\n'), nil
}

// decodeLine parses one line from the socket into a JSON object. Numbers
// are kept as json.Number so that the value model can tell unsigned
// integers, the -1 sentinel and doubles apart.
func decodeLine(line []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, &ProtocolParseError{Line: string(bytes.TrimSpace(line)), Err: err}
	}
	return obj, nil
}

// isEvent reports whether a decoded line is an asynchronous event rather
// than a command response. Any line carrying an "event" key is an event.
func isEvent(obj map[string]any) bool {
	_, ok := obj["event"]
	return ok
}

// parseResponse classifies a non-event line as the response to the given
// command. The "request_id" field is deliberately ignored: correlation is
// positional, which is sound because commands are never pipelined.
//
//   - "success": the optional "data" field is the payload
//   - "property unavailable": success with no value (many properties are
//     legitimately absent, e.g. before a file is loaded)
//   - anything else: the command was rejected, message returned verbatim
func parseResponse(obj map[string]any, command []any) (any, error) {
	status, ok := obj["error"]
	if !ok {
		return nil, &MissingFieldError{Field: "error"}
	}
	message, ok := status.(string)
	if !ok {
		return nil, &ValueShapeMismatchError{Expected: "string", Received: status}
	}

	switch message {
	case statusSuccess:
		return obj["data"], nil
	case statusUnavailable:
		return nil, nil
	default:
		return nil, &CommandRejectedError{Command: command, Message: message}
	}
}
