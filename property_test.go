package mpvipc

import (
	"errors"
	"testing"
)

func TestParsePropertyPath(t *testing.T) {
	property, err := ParseProperty("path", String("/tmp/a.mkv"))
	if err != nil {
		t.Fatalf("ParseProperty failed: %v", err)
	}
	path, ok := property.(PropertyPath)
	if !ok || path.Value == nil || *path.Value != "/tmp/a.mkv" {
		t.Errorf("got %#v", property)
	}

	property, err = ParseProperty("path", Null{})
	if err != nil {
		t.Fatalf("ParseProperty(null) failed: %v", err)
	}
	if path := property.(PropertyPath); path.Value != nil {
		t.Errorf("null path: got %#v, want nil value", path)
	}

	// An entirely absent value is a protocol violation for path.
	_, err = ParseProperty("path", nil)
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Errorf("absent path: got %v, want MissingFieldError", err)
	}
}

func TestParsePropertyOptionalFloats(t *testing.T) {
	for _, name := range []string{"playback-time", "duration", "time-pos", "time-remaining"} {
		property, err := ParseProperty(name, Double(12.5))
		if err != nil {
			t.Fatalf("ParseProperty(%s) failed: %v", name, err)
		}
		if v := floatValue(t, property); v == nil || *v != 12.5 {
			t.Errorf("%s: got %v, want 12.5", name, v)
		}

		// Absent before a file is loaded.
		for _, data := range []Data{nil, Null{}} {
			property, err := ParseProperty(name, data)
			if err != nil {
				t.Fatalf("ParseProperty(%s, %#v) failed: %v", name, data, err)
			}
			if v := floatValue(t, property); v != nil {
				t.Errorf("%s with %#v: got %v, want nil", name, data, *v)
			}
		}
	}
}

func floatValue(t *testing.T, property Property) *float64 {
	t.Helper()
	switch p := property.(type) {
	case PropertyPlaybackTime:
		return p.Value
	case PropertyDuration:
		return p.Value
	case PropertyTimePos:
		return p.Value
	case PropertyTimeRemaining:
		return p.Value
	default:
		t.Fatalf("unexpected property %#v", property)
		return nil
	}
}

func TestParsePropertyWholeNumberFloat(t *testing.T) {
	// mpv formats whole numbers without a decimal point, so they arrive as
	// unsigned integers; float-shaped properties must still accept them.
	property, err := ParseProperty("volume", Uint(100))
	if err != nil {
		t.Fatalf("ParseProperty failed: %v", err)
	}
	if v := property.(PropertyVolume); v.Value != 100 {
		t.Errorf("got %v, want 100", v.Value)
	}
}

func TestParsePropertyPlaylistPos(t *testing.T) {
	property, err := ParseProperty("playlist-pos", Uint(2))
	if err != nil {
		t.Fatalf("ParseProperty failed: %v", err)
	}
	if pos := property.(PropertyPlaylistPos); pos.Value == nil || *pos.Value != 2 {
		t.Errorf("got %#v, want 2", pos)
	}

	// -1 means no current entry.
	property, err = ParseProperty("playlist-pos", MinusOne{})
	if err != nil {
		t.Fatalf("ParseProperty(-1) failed: %v", err)
	}
	if pos := property.(PropertyPlaylistPos); pos.Value != nil {
		t.Errorf("-1: got %v, want nil", *pos.Value)
	}
}

func TestParsePropertyLoop(t *testing.T) {
	for _, tt := range []struct {
		data Data
		want Loop
	}{
		{String("inf"), Loop{Inf: true}},
		{String("no"), Loop{}},
		{Bool(true), Loop{Inf: true}},
		{Bool(false), Loop{}},
		{Uint(3), Loop{N: 3}},
	} {
		property, err := ParseProperty("loop-file", tt.data)
		if err != nil {
			t.Fatalf("ParseProperty(%#v) failed: %v", tt.data, err)
		}
		if loop := property.(PropertyLoopFile); loop.Value != tt.want {
			t.Errorf("%#v: got %+v, want %+v", tt.data, loop.Value, tt.want)
		}
	}

	_, err := ParseProperty("loop-playlist", String("sideways"))
	var mismatch *ValueShapeMismatchError
	if !errors.As(err, &mismatch) {
		t.Errorf("bad loop string: got %v, want ValueShapeMismatchError", err)
	}
}

func TestParsePropertyEofReached(t *testing.T) {
	// mpv stops sending the value once the file is torn down; absence means
	// the end was reached.
	property, err := ParseProperty("eof-reached", nil)
	if err != nil {
		t.Fatalf("ParseProperty failed: %v", err)
	}
	if eof := property.(PropertyEofReached); !eof.Value {
		t.Error("absent eof-reached: got false, want true")
	}
}

func TestParsePropertyUnknown(t *testing.T) {
	property, err := ParseProperty("sub-delay", Double(0.5))
	if err != nil {
		t.Fatalf("ParseProperty failed: %v", err)
	}
	unknown, ok := property.(PropertyUnknown)
	if !ok || unknown.Name != "sub-delay" || unknown.Data != Double(0.5) {
		t.Errorf("got %#v", property)
	}
}
