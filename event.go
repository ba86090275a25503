package mpvipc

// EventKind identifies an asynchronous message pushed by mpv.
//
// See https://mpv.io/manual/master/#list-of-events for the upstream list.
// Kinds not listed here still come through with the raw kind string and
// the decoded payload in [Event.Raw]; they are never an error.
type EventKind string

const (
	EventShutdown        EventKind = "shutdown"
	EventStartFile       EventKind = "start-file"
	EventEndFile         EventKind = "end-file"
	EventFileLoaded      EventKind = "file-loaded"
	EventIdle            EventKind = "idle"
	EventPause           EventKind = "pause"
	EventUnpause         EventKind = "unpause"
	EventTick            EventKind = "tick"
	EventVideoReconfig   EventKind = "video-reconfig"
	EventAudioReconfig   EventKind = "audio-reconfig"
	EventMetadataUpdate  EventKind = "metadata-update"
	EventSeek            EventKind = "seek"
	EventPlaybackRestart EventKind = "playback-restart"
	EventChapterChange   EventKind = "chapter-change"
	EventClientMessage   EventKind = "client-message"
	EventPropertyChange  EventKind = "property-change"
)

// Event is an asynchronous message pushed by mpv. Kind selects which of
// the payload fields are meaningful.
type Event struct {
	Kind EventKind

	// ID, Name and Data are set for property-change events: the
	// subscription id passed to ObserveProperty, the property name and
	// its new value.
	ID   uint64
	Name string
	Data Data

	// Args is set for client-message events.
	Args []string

	// Raw is the full decoded event object, kept for kinds this library
	// does not model.
	Raw Map
}

// parseEvent decodes a line tagged with an "event" key.
func parseEvent(obj map[string]any) (Event, error) {
	kind, ok := obj["event"].(string)
	if !ok {
		return Event{}, &ValueShapeMismatchError{Expected: "string", Received: obj["event"]}
	}

	raw, err := DataFromJSON(obj)
	if err != nil {
		return Event{}, err
	}
	event := Event{Kind: EventKind(kind), Raw: raw.(Map)}

	switch event.Kind {
	case EventPropertyChange:
		id, ok := event.Raw["id"].(Uint)
		if !ok {
			return Event{}, &MissingFieldError{Field: "id"}
		}
		name, ok := event.Raw["name"].(String)
		if !ok {
			return Event{}, &MissingFieldError{Field: "name"}
		}
		event.ID = uint64(id)
		event.Name = string(name)
		event.Data = event.Raw["data"] // nil when mpv sent no data
	case EventClientMessage:
		args, ok := event.Raw["args"].(Array)
		if !ok {
			return Event{}, &MissingFieldError{Field: "args"}
		}
		event.Args = make([]string, len(args))
		for i, arg := range args {
			s, ok := arg.(String)
			if !ok {
				return Event{}, &ValueShapeMismatchError{Expected: "string", Received: arg}
			}
			event.Args[i] = string(s)
		}
	}

	return event, nil
}

// ParseEventProperty decodes the property carried by a property-change
// event into a typed [Property], returning the subscription id it was
// observed under.
func ParseEventProperty(event Event) (uint64, Property, error) {
	if event.Kind != EventPropertyChange {
		return 0, nil, &ValueShapeMismatchError{Expected: "property-change event", Received: event.Kind}
	}
	property, err := ParseProperty(event.Name, event.Data)
	if err != nil {
		return 0, nil, err
	}
	return event.ID, property, nil
}
