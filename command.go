package mpvipc

import (
	"context"
	"strconv"
)

// SeekMode selects how [Mpv.Seek] interprets its seconds argument.
//
// See https://mpv.io/manual/master/#list-of-input-commands for the
// upstream command reference.
type SeekMode string

const (
	SeekRelative        SeekMode = "relative"
	SeekAbsolute        SeekMode = "absolute"
	SeekRelativePercent SeekMode = "relative-percent"
	SeekAbsolutePercent SeekMode = "absolute-percent"
)

// ChangeMode selects how a numeric setter interprets its argument.
type ChangeMode string

const (
	ChangeAbsolute ChangeMode = "absolute"
	ChangeIncrease ChangeMode = "increase"
	ChangeDecrease ChangeMode = "decrease"
)

// Switch turns a boolean-ish property on or off, or toggles it.
type Switch string

const (
	SwitchOn     Switch = "on"
	SwitchOff    Switch = "off"
	SwitchToggle Switch = "toggle"
)

// LoadMode selects whether loading replaces or appends to the playlist.
type LoadMode string

const (
	LoadReplace LoadMode = "replace"
	LoadAppend  LoadMode = "append"
)

// LoadType distinguishes loading a single file from loading a playlist
// file.
type LoadType string

const (
	LoadFile     LoadType = "file"
	LoadPlaylist LoadType = "playlist"
)

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

// Seek moves the playback position by or to the given seconds, depending
// on the mode.
func (m *Mpv) Seek(ctx context.Context, seconds float64, mode SeekMode) error {
	return m.runCommandIgnoreValue(ctx, "seek", formatSeconds(seconds), string(mode))
}

// Restart starts the current file from the beginning.
func (m *Mpv) Restart(ctx context.Context) error {
	return m.Seek(ctx, 0, SeekAbsolute)
}

// Stop stops playback completely (as opposed to pausing), dropping the
// current file.
func (m *Mpv) Stop(ctx context.Context) error {
	return m.runCommandIgnoreValue(ctx, "stop")
}

// Kill asks the mpv process to exit. Mpv may ignore this if it is stuck;
// killing the process for real requires a handle on the process itself.
func (m *Mpv) Kill(ctx context.Context) error {
	return m.runCommandIgnoreValue(ctx, "quit")
}

// TogglePause flips the pause state.
func (m *Mpv) TogglePause(ctx context.Context) error {
	return m.runCommandIgnoreValue(ctx, "cycle", "pause")
}

// SetPause turns pause on or off, or toggles it.
func (m *Mpv) SetPause(ctx context.Context, sw Switch) error {
	switch sw {
	case SwitchOn:
		return m.SetProperty(ctx, "pause", true)
	case SwitchOff:
		return m.SetProperty(ctx, "pause", false)
	default:
		return m.TogglePause(ctx)
	}
}

// SetMute turns mute on or off, or toggles it.
func (m *Mpv) SetMute(ctx context.Context, sw Switch) error {
	switch sw {
	case SwitchOn:
		return m.SetProperty(ctx, "mute", true)
	case SwitchOff:
		return m.SetProperty(ctx, "mute", false)
	default:
		return m.runCommandIgnoreValue(ctx, "cycle", "mute")
	}
}

// SetLoopFile controls looping of the current file.
func (m *Mpv) SetLoopFile(ctx context.Context, sw Switch) error {
	return m.setLoop(ctx, "loop-file", sw)
}

// SetLoopPlaylist controls looping of the whole playlist.
func (m *Mpv) SetLoopPlaylist(ctx context.Context, sw Switch) error {
	return m.setLoop(ctx, "loop-playlist", sw)
}

func (m *Mpv) setLoop(ctx context.Context, property string, sw Switch) error {
	var value string
	switch sw {
	case SwitchOn:
		value = "inf"
	case SwitchOff:
		value = "no"
	default:
		data, err := m.GetProperty(ctx, property)
		if err != nil {
			return err
		}
		current, err := parseLoop(data)
		if err != nil {
			return err
		}
		if current.Inf || current.N > 0 {
			value = "no"
		} else {
			value = "inf"
		}
	}
	return m.SetProperty(ctx, property, value)
}

// SetVolume changes the volume, either to an absolute value or relative to
// the current one.
func (m *Mpv) SetVolume(ctx context.Context, volume float64, mode ChangeMode) error {
	return m.changeNumber(ctx, "volume", volume, mode)
}

// SetSpeed changes the playback speed, either to an absolute value or
// relative to the current one.
func (m *Mpv) SetSpeed(ctx context.Context, speed float64, mode ChangeMode) error {
	return m.changeNumber(ctx, "speed", speed, mode)
}

func (m *Mpv) changeNumber(ctx context.Context, property string, value float64, mode ChangeMode) error {
	switch mode {
	case ChangeIncrease, ChangeDecrease:
		current, ok, err := m.GetPropertyFloat(ctx, property)
		if err != nil {
			return err
		}
		if !ok {
			return &MissingFieldError{Field: "data"}
		}
		if mode == ChangeIncrease {
			value = current + value
		} else {
			value = current - value
		}
	}
	return m.SetProperty(ctx, property, value)
}

// PlaylistAdd loads a file or a playlist file, replacing or appending to
// the current playlist.
func (m *Mpv) PlaylistAdd(ctx context.Context, file string, fileType LoadType, mode LoadMode) error {
	verb := "loadfile"
	if fileType == LoadPlaylist {
		verb = "loadlist"
	}
	return m.runCommandIgnoreValue(ctx, verb, file, string(mode))
}

// PlaylistClear removes all entries from the playlist.
func (m *Mpv) PlaylistClear(ctx context.Context) error {
	return m.runCommandIgnoreValue(ctx, "playlist-clear")
}

// PlaylistMove moves the entry at position from to position to. Entries
// after to shift one position up, so moving an entry further down lands it
// one before the given target.
func (m *Mpv) PlaylistMove(ctx context.Context, from, to int) error {
	return m.runCommandIgnoreValue(ctx, "playlist-move", strconv.Itoa(from), strconv.Itoa(to))
}

// PlaylistNext skips to the next playlist entry.
func (m *Mpv) PlaylistNext(ctx context.Context) error {
	return m.runCommandIgnoreValue(ctx, "playlist-next")
}

// PlaylistPrev goes back to the previous playlist entry.
func (m *Mpv) PlaylistPrev(ctx context.Context) error {
	return m.runCommandIgnoreValue(ctx, "playlist-prev")
}

// PlaylistPlayID starts playing the entry at the given position.
func (m *Mpv) PlaylistPlayID(ctx context.Context, id int) error {
	return m.SetProperty(ctx, "playlist-pos", id)
}

// PlaylistPlayNext moves the entry at the given position to right after
// the current one, so it plays next.
func (m *Mpv) PlaylistPlayNext(ctx context.Context, id int) error {
	current, ok, err := m.GetPropertyUint(ctx, "playlist-pos")
	if err != nil {
		return err
	}
	if !ok {
		return &MissingFieldError{Field: "data"}
	}
	return m.PlaylistMove(ctx, id, int(current)+1)
}

// PlaylistRemoveID removes the entry at the given position.
func (m *Mpv) PlaylistRemoveID(ctx context.Context, id int) error {
	return m.runCommandIgnoreValue(ctx, "playlist-remove", strconv.Itoa(id))
}

// PlaylistShuffle shuffles the playlist.
func (m *Mpv) PlaylistShuffle(ctx context.Context) error {
	return m.runCommandIgnoreValue(ctx, "playlist-shuffle")
}

// GetPlaylist retrieves the current playlist. Entry IDs are positions in
// the returned slice.
func (m *Mpv) GetPlaylist(ctx context.Context) (Playlist, error) {
	data, err := m.GetProperty(ctx, "playlist")
	if err != nil {
		return nil, err
	}
	return PlaylistFromData(data)
}

// GetMetadata retrieves the metadata tags of the current file, nil when no
// file is loaded.
func (m *Mpv) GetMetadata(ctx context.Context) (Map, error) {
	return m.GetPropertyMap(ctx, "metadata")
}
