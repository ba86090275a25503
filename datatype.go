package mpvipc

import (
	"encoding/json"
	"math"
	"strconv"
)

// Data is the closed set of value shapes the mpv protocol can transmit.
// Every value decoded off the wire is one of [Array], [Bool], [Double],
// [Map], [Null], [MinusOne], [String], [Uint] or [Playlist].
type Data interface {
	// JSON returns a representation suitable for encoding/json, such that
	// re-encoding a decoded value is observationally identical for scalars
	// and order-preserving for arrays.
	JSON() any

	data()
}

// Array is an ordered sequence of dynamic values.
type Array []Data

// Bool is a boolean protocol value.
type Bool bool

// Double is a finite 64-bit float protocol value.
type Double float64

// Map holds named dynamic values. Key order carries no meaning.
type Map map[string]Data

// Null is JSON null.
type Null struct{}

// MinusOne is the numeric -1 sentinel mpv uses to mean "absent" for some
// properties (e.g. playlist-pos). It is distinct from Null.
type MinusOne struct{}

// String is a string protocol value.
type String string

// Uint is an unsigned 64-bit integer protocol value.
type Uint uint64

// Playlist is mpv's playlist: entries in playback order. It never comes
// straight off the wire; build it with [PlaylistFromData].
type Playlist []PlaylistEntry

// PlaylistEntry is a single playlist item. ID is the entry's position in
// the playlist array; the wire carries no stable identifier.
type PlaylistEntry struct {
	ID       int
	Filename string
	Title    string // empty when mpv reported no title
	Current  bool
}

func (Array) data()    {}
func (Bool) data()     {}
func (Double) data()   {}
func (Map) data()      {}
func (Null) data()     {}
func (MinusOne) data() {}
func (String) data()   {}
func (Uint) data()     {}
func (Playlist) data() {}

func (a Array) JSON() any {
	out := make([]any, len(a))
	for i, v := range a {
		out[i] = v.JSON()
	}
	return out
}

func (b Bool) JSON() any { return bool(b) }

func (d Double) JSON() any { return float64(d) }

func (m Map) JSON() any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v.JSON()
	}
	return out
}

func (Null) JSON() any { return nil }

func (MinusOne) JSON() any { return json.Number("-1") }

func (s String) JSON() any { return string(s) }

func (u Uint) JSON() any { return json.Number(strconv.FormatUint(uint64(u), 10)) }

func (p Playlist) JSON() any {
	out := make([]any, len(p))
	for i, e := range p {
		entry := map[string]any{
			"filename": e.Filename,
			"current":  e.Current,
		}
		if e.Title != "" {
			entry["title"] = e.Title
		}
		out[i] = entry
	}
	return out
}

// DataFromJSON converts a decoded JSON value (ideally decoded with
// json.Decoder.UseNumber) into the closed [Data] union. It is total over the protocol's subset of JSON:
// the only failure modes are a numeric literal no [Data] variant can carry
// and, transitively, the first such literal inside a container.
func DataFromJSON(v any) (Data, error) {
	switch v := v.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case json.Number:
		return numberToData(v)
	case float64:
		// Plain json.Unmarshal output; only seen when the caller decoded
		// without UseNumber.
		return floatToData(v)
	case []any:
		out := make(Array, len(v))
		for i, elem := range v {
			d, err := DataFromJSON(elem)
			if err != nil {
				return nil, err
			}
			out[i] = d
		}
		return out, nil
	case map[string]any:
		out := make(Map, len(v))
		for k, elem := range v {
			d, err := DataFromJSON(elem)
			if err != nil {
				return nil, err
			}
			out[k] = d
		}
		return out, nil
	default:
		return nil, &ValueShapeMismatchError{Expected: "json value", Received: v}
	}
}

func numberToData(n json.Number) (Data, error) {
	if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return Uint(u), nil
	}
	if n.String() == "-1" {
		return MinusOne{}, nil
	}
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, &UnsupportedNumberError{Literal: n.String()}
	}
	return Double(f), nil
}

func floatToData(f float64) (Data, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, &UnsupportedNumberError{Literal: strconv.FormatFloat(f, 'g', -1, 64)}
	}
	// Strict upper bound: math.MaxUint64 rounds up to 2^64 as a float64,
	// and converting that to uint64 overflows.
	if f == math.Trunc(f) && f >= 0 && f < 1<<64 {
		return Uint(uint64(f)), nil
	}
	if f == -1 {
		return MinusOne{}, nil
	}
	return Double(f), nil
}

// PlaylistFromData converts the dynamic value of the "playlist" property.
// Each element must be a map with a string "filename", a bool "current"
// and an optional string "title". Entry IDs are assigned by array position.
func PlaylistFromData(data Data) (Playlist, error) {
	if data == nil {
		return Playlist{}, nil
	}
	array, ok := data.(Array)
	if !ok {
		if _, isNull := data.(Null); isNull {
			return Playlist{}, nil
		}
		return nil, &ValueShapeMismatchError{Expected: "array", Received: data}
	}

	playlist := make(Playlist, 0, len(array))
	for i, elem := range array {
		m, ok := elem.(Map)
		if !ok {
			return nil, &ValueShapeMismatchError{Expected: "map", Received: elem}
		}
		entry, err := playlistEntryFromMap(m)
		if err != nil {
			return nil, err
		}
		entry.ID = i
		playlist = append(playlist, entry)
	}
	return playlist, nil
}

func playlistEntryFromMap(m Map) (PlaylistEntry, error) {
	var entry PlaylistEntry

	filename, ok := m["filename"]
	if !ok {
		return entry, &MissingFieldError{Field: "filename"}
	}
	s, ok := filename.(String)
	if !ok {
		return entry, &ValueShapeMismatchError{Expected: "string", Received: filename}
	}
	entry.Filename = string(s)

	current, ok := m["current"]
	if !ok {
		return entry, &MissingFieldError{Field: "current"}
	}
	b, ok := current.(Bool)
	if !ok {
		return entry, &ValueShapeMismatchError{Expected: "bool", Received: current}
	}
	entry.Current = bool(b)

	if title, ok := m["title"]; ok {
		s, ok := title.(String)
		if !ok {
			return entry, &ValueShapeMismatchError{Expected: "string", Received: title}
		}
		entry.Title = string(s)
	}

	return entry, nil
}
