package mpvipc

import (
	"errors"
	"testing"
)

func TestParseEventPropertyChange(t *testing.T) {
	obj, err := decodeLine([]byte(`{"event":"property-change","id":3,"name":"volume","data":64.5}`))
	if err != nil {
		t.Fatalf("decodeLine failed: %v", err)
	}
	event, err := parseEvent(obj)
	if err != nil {
		t.Fatalf("parseEvent failed: %v", err)
	}

	if event.Kind != EventPropertyChange {
		t.Errorf("kind: got %q", event.Kind)
	}
	if event.ID != 3 || event.Name != "volume" || event.Data != Double(64.5) {
		t.Errorf("got id=%d name=%q data=%#v", event.ID, event.Name, event.Data)
	}

	id, property, err := ParseEventProperty(event)
	if err != nil {
		t.Fatalf("ParseEventProperty failed: %v", err)
	}
	if id != 3 {
		t.Errorf("id: got %d, want 3", id)
	}
	if volume := property.(PropertyVolume); volume.Value != 64.5 {
		t.Errorf("volume: got %v, want 64.5", volume.Value)
	}
}

func TestParseEventPropertyChangeNoData(t *testing.T) {
	obj, err := decodeLine([]byte(`{"event":"property-change","id":1,"name":"eof-reached"}`))
	if err != nil {
		t.Fatalf("decodeLine failed: %v", err)
	}
	event, err := parseEvent(obj)
	if err != nil {
		t.Fatalf("parseEvent failed: %v", err)
	}
	if event.Data != nil {
		t.Errorf("data: got %#v, want nil", event.Data)
	}
}

func TestParseEventPropertyChangeMissingID(t *testing.T) {
	obj := map[string]any{"event": "property-change", "name": "volume"}
	_, err := parseEvent(obj)
	var missing *MissingFieldError
	if !errors.As(err, &missing) || missing.Field != "id" {
		t.Fatalf("got %v, want MissingFieldError(id)", err)
	}
}

func TestParseEventClientMessage(t *testing.T) {
	obj, err := decodeLine([]byte(`{"event":"client-message","args":["hello","world"]}`))
	if err != nil {
		t.Fatalf("decodeLine failed: %v", err)
	}
	event, err := parseEvent(obj)
	if err != nil {
		t.Fatalf("parseEvent failed: %v", err)
	}
	if len(event.Args) != 2 || event.Args[0] != "hello" || event.Args[1] != "world" {
		t.Errorf("args: got %v", event.Args)
	}
}

func TestParseEventUnknownKind(t *testing.T) {
	// Kinds this library does not model still come through.
	obj := map[string]any{"event": "hook", "hook_id": "x"}
	event, err := parseEvent(obj)
	if err != nil {
		t.Fatalf("parseEvent failed: %v", err)
	}
	if event.Kind != "hook" {
		t.Errorf("kind: got %q", event.Kind)
	}
	if event.Raw["hook_id"] != String("x") {
		t.Errorf("raw payload lost: %#v", event.Raw)
	}
}

func TestParseEventPropertyWrongKind(t *testing.T) {
	_, _, err := ParseEventProperty(Event{Kind: EventIdle})
	var mismatch *ValueShapeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("got %v, want ValueShapeMismatchError", err)
	}
}
