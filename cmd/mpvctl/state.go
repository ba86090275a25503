package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tr1v3r/mpvipc"
)

// PlaybackState accumulates observed property changes into a snapshot of
// what the player is doing right now.
type PlaybackState struct {
	mu           sync.RWMutex
	Path         string
	Pause        bool
	PlaybackTime *float64
	Duration     *float64
	Metadata     mpvipc.Map
}

func NewPlaybackState() *PlaybackState {
	return &PlaybackState{}
}

// Apply folds one decoded property into the state and reports whether
// anything visible changed.
func (s *PlaybackState) Apply(property mpvipc.Property) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch p := property.(type) {
	case mpvipc.PropertyPath:
		if p.Value != nil {
			s.Path = *p.Value
		} else {
			s.Path = ""
		}
	case mpvipc.PropertyPause:
		s.Pause = p.Value
	case mpvipc.PropertyPlaybackTime:
		s.PlaybackTime = p.Value
	case mpvipc.PropertyDuration:
		s.Duration = p.Value
	case mpvipc.PropertyMetadata:
		s.Metadata = p.Value
	default:
		return false
	}
	return true
}

// Render returns a one-line summary of the current state.
func (s *PlaybackState) Render() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b strings.Builder
	if s.Path == "" {
		b.WriteString("(nothing playing)")
		return b.String()
	}

	if s.Pause {
		b.WriteString("paused  ")
	} else {
		b.WriteString("playing ")
	}
	b.WriteString(s.Path)
	if s.PlaybackTime != nil {
		fmt.Fprintf(&b, "  %s", secondsToHMS(*s.PlaybackTime))
		if s.Duration != nil {
			fmt.Fprintf(&b, " / %s", secondsToHMS(*s.Duration))
		}
	}
	if title, ok := s.Metadata["TITLE"].(mpvipc.String); ok {
		fmt.Fprintf(&b, "  [%s]", string(title))
	}
	return b.String()
}

func secondsToHMS(total float64) string {
	t := int64(total)
	return fmt.Sprintf("%02d:%02d:%02d", t/3600, t/60%60, t%60)
}
