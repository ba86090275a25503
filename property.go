package mpvipc

// Property is the typed decoding of a named piece of mpv state. It is a
// closed set: every recognized name decodes to its own variant, anything
// else comes through as [PropertyUnknown].
//
// Mpv exposes on the order of a thousand properties; only the most common
// ones are modeled here. See https://mpv.io/manual/master/#properties.
type Property interface {
	property()
}

// PropertyPath is the "path" property. Nil before a file is loaded.
type PropertyPath struct{ Value *string }

// PropertyPause is the "pause" property.
type PropertyPause struct{ Value bool }

// PropertyPlaybackTime is the "playback-time" property. Nil before a file
// is loaded.
type PropertyPlaybackTime struct{ Value *float64 }

// PropertyDuration is the "duration" property. Nil before a file is loaded.
type PropertyDuration struct{ Value *float64 }

// PropertyMetadata is the "metadata" property. Nil when unavailable.
type PropertyMetadata struct{ Value Map }

// PropertyPlaylist is the "playlist" property.
type PropertyPlaylist struct{ Entries Playlist }

// PropertyPlaylistPos is the "playlist-pos" property. Nil when no entry is
// current (mpv reports -1).
type PropertyPlaylistPos struct{ Value *uint64 }

// PropertyLoopFile is the "loop-file" property.
type PropertyLoopFile struct{ Value Loop }

// PropertyLoopPlaylist is the "loop-playlist" property.
type PropertyLoopPlaylist struct{ Value Loop }

// PropertyTimePos is the "time-pos" property.
type PropertyTimePos struct{ Value *float64 }

// PropertyTimeRemaining is the "time-remaining" property.
type PropertyTimeRemaining struct{ Value *float64 }

// PropertySpeed is the "speed" property.
type PropertySpeed struct{ Value float64 }

// PropertyVolume is the "volume" property.
type PropertyVolume struct{ Value float64 }

// PropertyMute is the "mute" property.
type PropertyMute struct{ Value bool }

// PropertyEofReached is the "eof-reached" property.
type PropertyEofReached struct{ Value bool }

// PropertyUnknown carries a property this library does not model, with its
// value passed through undecoded.
type PropertyUnknown struct {
	Name string
	Data Data
}

func (PropertyPath) property()          {}
func (PropertyPause) property()         {}
func (PropertyPlaybackTime) property()  {}
func (PropertyDuration) property()      {}
func (PropertyMetadata) property()      {}
func (PropertyPlaylist) property()      {}
func (PropertyPlaylistPos) property()   {}
func (PropertyLoopFile) property()      {}
func (PropertyLoopPlaylist) property()  {}
func (PropertyTimePos) property()       {}
func (PropertyTimeRemaining) property() {}
func (PropertySpeed) property()         {}
func (PropertyVolume) property()        {}
func (PropertyMute) property()          {}
func (PropertyEofReached) property()    {}
func (PropertyUnknown) property()       {}

// Loop describes mpv's loop-file/loop-playlist state: endless, off, or a
// finite remaining count.
type Loop struct {
	Inf bool
	N   uint64 // remaining iterations; meaningful only when Inf is false
}

// ParseProperty decodes the dynamic value of a named property into a typed
// [Property]. A nil data means mpv sent no value at all; properties that
// are legitimately absent (e.g. "playback-time" before a file is loaded)
// accept nil or [Null] and decode to a nil-carrying variant, all others
// require a present value. Unrecognized names decode to [PropertyUnknown]
// rather than failing.
func ParseProperty(name string, data Data) (Property, error) {
	switch name {
	case "path":
		switch v := data.(type) {
		case String:
			s := string(v)
			return PropertyPath{Value: &s}, nil
		case Null:
			return PropertyPath{}, nil
		case nil:
			return nil, &MissingFieldError{Field: "data"}
		default:
			return nil, &ValueShapeMismatchError{Expected: "string", Received: data}
		}
	case "pause":
		b, err := requireBool(data)
		return PropertyPause{Value: b}, err
	case "playback-time":
		v, err := optionalFloat(data)
		return PropertyPlaybackTime{Value: v}, err
	case "duration":
		v, err := optionalFloat(data)
		return PropertyDuration{Value: v}, err
	case "time-pos":
		v, err := optionalFloat(data)
		return PropertyTimePos{Value: v}, err
	case "time-remaining":
		v, err := optionalFloat(data)
		return PropertyTimeRemaining{Value: v}, err
	case "metadata":
		switch v := data.(type) {
		case Map:
			return PropertyMetadata{Value: v}, nil
		case Null, nil:
			return PropertyMetadata{}, nil
		default:
			return nil, &ValueShapeMismatchError{Expected: "map", Received: data}
		}
	case "playlist":
		entries, err := PlaylistFromData(data)
		if err != nil {
			return nil, err
		}
		return PropertyPlaylist{Entries: entries}, nil
	case "playlist-pos":
		switch v := data.(type) {
		case Uint:
			u := uint64(v)
			return PropertyPlaylistPos{Value: &u}, nil
		case MinusOne, Null, nil:
			return PropertyPlaylistPos{}, nil
		default:
			return nil, &ValueShapeMismatchError{Expected: "uint or -1", Received: data}
		}
	case "loop-file":
		v, err := parseLoop(data)
		return PropertyLoopFile{Value: v}, err
	case "loop-playlist":
		v, err := parseLoop(data)
		return PropertyLoopPlaylist{Value: v}, err
	case "speed":
		v, err := requireFloat(data)
		return PropertySpeed{Value: v}, err
	case "volume":
		v, err := requireFloat(data)
		return PropertyVolume{Value: v}, err
	case "mute":
		b, err := requireBool(data)
		return PropertyMute{Value: b}, err
	case "eof-reached":
		// mpv omits the value once playback past EOF has torn down the
		// file; absence means reached.
		if data == nil {
			return PropertyEofReached{Value: true}, nil
		}
		b, err := requireBool(data)
		return PropertyEofReached{Value: b}, err
	default:
		return PropertyUnknown{Name: name, Data: data}, nil
	}
}

func requireBool(data Data) (bool, error) {
	switch v := data.(type) {
	case Bool:
		return bool(v), nil
	case nil:
		return false, &MissingFieldError{Field: "data"}
	default:
		return false, &ValueShapeMismatchError{Expected: "bool", Received: data}
	}
}

// requireFloat accepts any numeric shape; mpv formats whole-number floats
// without a decimal point, which decode as [Uint] or [MinusOne].
func requireFloat(data Data) (float64, error) {
	switch v := data.(type) {
	case Double:
		return float64(v), nil
	case Uint:
		return float64(v), nil
	case MinusOne:
		return -1, nil
	case nil:
		return 0, &MissingFieldError{Field: "data"}
	default:
		return 0, &ValueShapeMismatchError{Expected: "float64", Received: data}
	}
}

func optionalFloat(data Data) (*float64, error) {
	switch data.(type) {
	case Null, nil:
		return nil, nil
	default:
		f, err := requireFloat(data)
		if err != nil {
			return nil, err
		}
		return &f, nil
	}
}

// parseLoop tolerates the three shapes mpv uses for loop state: a count,
// a bool, or the strings "inf"/"no".
func parseLoop(data Data) (Loop, error) {
	switch v := data.(type) {
	case Uint:
		return Loop{N: uint64(v)}, nil
	case Bool:
		return Loop{Inf: bool(v)}, nil
	case String:
		switch v {
		case "inf":
			return Loop{Inf: true}, nil
		case "no":
			return Loop{}, nil
		}
		return Loop{}, &ValueShapeMismatchError{Expected: `"inf", "no", bool or uint`, Received: data}
	case nil:
		return Loop{}, &MissingFieldError{Field: "data"}
	default:
		return Loop{}, &ValueShapeMismatchError{Expected: `"inf", "no", bool or uint`, Received: data}
	}
}
