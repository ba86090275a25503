package mpvipc

import (
	"context"
	"os/exec"
	"testing"
	"time"
)

func TestLaunch_Integration(t *testing.T) {
	// This integration test requires mpv to be installed.

	if _, err := exec.LookPath("mpv"); err != nil {
		t.Skip("mpv not found in PATH, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	proc, mpv, err := Launch(ctx, DefaultOptions())
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	defer func() {
		t.Log("Stopping...")
		_ = mpv.Disconnect(ctx)
		_ = proc.Close()
	}()

	t.Log("Checking idle state...")
	idle, ok, err := mpv.GetPropertyBool(ctx, "idle-active")
	if err != nil {
		t.Fatalf("GetPropertyBool failed: %v", err)
	}
	if !ok || !idle {
		t.Errorf("idle-active: got (%v, %v), want (true, true)", idle, ok)
	}

	t.Log("Toggling pause...")
	if err := mpv.TogglePause(ctx); err != nil {
		t.Errorf("TogglePause failed: %v", err)
	}
	paused, ok, err := mpv.GetPropertyBool(ctx, "pause")
	if err != nil || !ok {
		t.Fatalf("GetPropertyBool(pause) failed: (%v, %v)", ok, err)
	}
	if !paused {
		t.Error("pause not toggled on")
	}

	t.Log("Observing volume...")
	stream := mpv.Subscribe()
	defer stream.Close()
	if err := mpv.ObserveProperty(ctx, 1, "volume"); err != nil {
		t.Fatalf("ObserveProperty failed: %v", err)
	}
	if err := mpv.SetVolume(ctx, 64, ChangeAbsolute); err != nil {
		t.Fatalf("SetVolume failed: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case event, ok := <-stream.C:
			if !ok {
				t.Fatal("event stream ended early")
			}
			if event.Kind != EventPropertyChange || event.Name != "volume" {
				continue
			}
			_, property, err := ParseEventProperty(event)
			if err != nil {
				t.Fatalf("ParseEventProperty failed: %v", err)
			}
			if volume := property.(PropertyVolume); volume.Value == 64 {
				return
			}
		case <-deadline:
			t.Fatal("volume change event never arrived")
		}
	}
}
