package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/tr1v3r/pkg/log"
	"github.com/urfave/cli/v3"

	"github.com/tr1v3r/mpvipc"
)

func main() {
	defer log.Close()

	cfg := Load()

	cmd := &cli.Command{
		Name:  "mpvctl",
		Usage: "control a running mpv through its JSON IPC socket",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "socket",
				Aliases: []string{"s"},
				Value:   cfg.SocketPath,
				Usage:   "path to mpv's --input-ipc-server socket",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Value: cfg.Debug,
				Usage: "enable debug logging",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if c.Bool("debug") {
				log.SetLevel(log.DebugLevel)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			statusCommand(cfg),
			watchCommand(cfg),
			playbackCommand("play", "resume playback", mpvipc.SwitchOff, cfg),
			playbackCommand("pause", "pause playback", mpvipc.SwitchOn, cfg),
			playbackCommand("toggle", "toggle pause", mpvipc.SwitchToggle, cfg),
			seekCommand(cfg),
			volumeCommand(cfg),
			muteCommand(cfg),
			loadCommand(cfg),
			playlistCommand(cfg),
			rawCommand(cfg),
			statsCommand(cfg),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Error("mpvctl: %v", err)
		os.Exit(1)
	}
}

func connect(ctx context.Context, c *cli.Command, cfg Config) (*mpvipc.Mpv, error) {
	opts := mpvipc.DefaultOptions()
	opts.QueueSize = cfg.QueueSize
	opts.EventBuffer = cfg.EventBuffer
	opts.Logger = mpvipc.PkgLog()
	return mpvipc.ConnectWithOptions(ctx, c.String("socket"), opts)
}

func statusCommand(cfg Config) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "print what mpv is playing right now",
		Action: func(ctx context.Context, c *cli.Command) error {
			mpv, err := connect(ctx, c, cfg)
			if err != nil {
				return err
			}
			defer mpv.Disconnect(ctx)

			path, ok, err := mpv.GetPropertyString(ctx, "path")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("nothing playing")
				return nil
			}

			paused, _, err := mpv.GetPropertyBool(ctx, "pause")
			if err != nil {
				return err
			}
			state := "playing"
			if paused {
				state = "paused"
			}
			fmt.Printf("%s %s\n", state, path)

			if pos, ok, err := mpv.GetPropertyFloat(ctx, "playback-time"); err == nil && ok {
				line := secondsToHMS(pos)
				if dur, ok, err := mpv.GetPropertyFloat(ctx, "duration"); err == nil && ok {
					line += " / " + secondsToHMS(dur)
				}
				fmt.Println(line)
			}

			meta, err := mpv.GetMetadata(ctx)
			if err != nil {
				return err
			}
			for key, value := range meta {
				fmt.Printf("  %s: %v\n", key, value.JSON())
			}
			return nil
		},
	}
}

// watchCommand observes the core playback properties and prints a state
// line on every change until interrupted.
func watchCommand(cfg Config) *cli.Command {
	observed := []string{"path", "pause", "playback-time", "duration", "metadata"}

	return &cli.Command{
		Name:  "watch",
		Usage: "follow playback state changes until interrupted",
		Action: func(ctx context.Context, c *cli.Command) error {
			mpv, err := connect(ctx, c, cfg)
			if err != nil {
				return err
			}
			defer mpv.Disconnect(context.WithoutCancel(ctx))

			stream := mpv.Subscribe()
			defer stream.Close()

			for i, name := range observed {
				if err := mpv.ObserveProperty(ctx, uint64(i+1), name); err != nil {
					return err
				}
			}

			state := NewPlaybackState()
			for {
				select {
				case <-ctx.Done():
					return nil
				case event, ok := <-stream.C:
					if !ok {
						return mpvipc.ErrDisconnected
					}
					if event.Kind != mpvipc.EventPropertyChange {
						log.Debug("event: %s", event.Kind)
						continue
					}
					_, property, err := mpvipc.ParseEventProperty(event)
					if err != nil {
						log.Error("bad property change: %v", err)
						continue
					}
					if state.Apply(property) {
						fmt.Println(state.Render())
					}
				}
			}
		},
	}
}

func playbackCommand(name, usage string, sw mpvipc.Switch, cfg Config) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Action: func(ctx context.Context, c *cli.Command) error {
			mpv, err := connect(ctx, c, cfg)
			if err != nil {
				return err
			}
			defer mpv.Disconnect(ctx)
			return mpv.SetPause(ctx, sw)
		},
	}
}

func seekCommand(cfg Config) *cli.Command {
	return &cli.Command{
		Name:      "seek",
		Usage:     "seek by (or to, with --absolute) the given seconds",
		ArgsUsage: "<seconds>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "absolute", Usage: "seek to an absolute position"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			seconds, err := strconv.ParseFloat(c.Args().First(), 64)
			if err != nil {
				return fmt.Errorf("seek needs a number of seconds: %w", err)
			}
			mode := mpvipc.SeekRelative
			if c.Bool("absolute") {
				mode = mpvipc.SeekAbsolute
			}

			mpv, err := connect(ctx, c, cfg)
			if err != nil {
				return err
			}
			defer mpv.Disconnect(ctx)
			return mpv.Seek(ctx, seconds, mode)
		},
	}
}

func volumeCommand(cfg Config) *cli.Command {
	return &cli.Command{
		Name:      "volume",
		Usage:     "set the volume, or adjust it with --up/--down",
		ArgsUsage: "<value>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "up", Usage: "increase by the given amount"},
			&cli.BoolFlag{Name: "down", Usage: "decrease by the given amount"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			value, err := strconv.ParseFloat(c.Args().First(), 64)
			if err != nil {
				return fmt.Errorf("volume needs a number: %w", err)
			}
			mode := mpvipc.ChangeAbsolute
			switch {
			case c.Bool("up"):
				mode = mpvipc.ChangeIncrease
			case c.Bool("down"):
				mode = mpvipc.ChangeDecrease
			}

			mpv, err := connect(ctx, c, cfg)
			if err != nil {
				return err
			}
			defer mpv.Disconnect(ctx)
			return mpv.SetVolume(ctx, value, mode)
		},
	}
}

func muteCommand(cfg Config) *cli.Command {
	return &cli.Command{
		Name:      "mute",
		Usage:     "mute, unmute or toggle (default) audio",
		ArgsUsage: "[on|off|toggle]",
		Action: func(ctx context.Context, c *cli.Command) error {
			sw := mpvipc.SwitchToggle
			switch c.Args().First() {
			case "on":
				sw = mpvipc.SwitchOn
			case "off":
				sw = mpvipc.SwitchOff
			}

			mpv, err := connect(ctx, c, cfg)
			if err != nil {
				return err
			}
			defer mpv.Disconnect(ctx)
			return mpv.SetMute(ctx, sw)
		},
	}
}

func loadCommand(cfg Config) *cli.Command {
	return &cli.Command{
		Name:      "load",
		Usage:     "load a file, replacing or appending to the playlist",
		ArgsUsage: "<file-or-url>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "append", Usage: "append instead of replacing"},
			&cli.BoolFlag{Name: "playlist", Usage: "treat the argument as a playlist file"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			file := c.Args().First()
			if file == "" {
				return fmt.Errorf("load needs a file or URL")
			}
			mode := mpvipc.LoadReplace
			if c.Bool("append") {
				mode = mpvipc.LoadAppend
			}
			fileType := mpvipc.LoadFile
			if c.Bool("playlist") {
				fileType = mpvipc.LoadPlaylist
			}

			mpv, err := connect(ctx, c, cfg)
			if err != nil {
				return err
			}
			defer mpv.Disconnect(ctx)
			return mpv.PlaylistAdd(ctx, file, fileType, mode)
		},
	}
}

func playlistCommand(cfg Config) *cli.Command {
	return &cli.Command{
		Name:  "playlist",
		Usage: "print the current playlist",
		Action: func(ctx context.Context, c *cli.Command) error {
			mpv, err := connect(ctx, c, cfg)
			if err != nil {
				return err
			}
			defer mpv.Disconnect(ctx)

			playlist, err := mpv.GetPlaylist(ctx)
			if err != nil {
				return err
			}
			for _, entry := range playlist {
				marker := " "
				if entry.Current {
					marker = "*"
				}
				title := entry.Title
				if title == "" {
					title = entry.Filename
				}
				fmt.Printf("%s %3d  %s\n", marker, entry.ID, title)
			}
			return nil
		},
	}
}

func rawCommand(cfg Config) *cli.Command {
	return &cli.Command{
		Name:      "raw",
		Usage:     "send an arbitrary command and print the response",
		ArgsUsage: "<command> [args...]",
		Action: func(ctx context.Context, c *cli.Command) error {
			args := c.Args().Slice()
			if len(args) == 0 {
				return fmt.Errorf("raw needs a command name")
			}

			mpv, err := connect(ctx, c, cfg)
			if err != nil {
				return err
			}
			defer mpv.Disconnect(ctx)

			data, err := mpv.RunCommandRaw(ctx, args[0], args[1:]...)
			if err != nil {
				return err
			}
			if data != nil {
				fmt.Printf("%v\n", data)
			}
			return nil
		},
	}
}

func statsCommand(cfg Config) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "print connection counters after a round trip",
		Action: func(ctx context.Context, c *cli.Command) error {
			mpv, err := connect(ctx, c, cfg)
			if err != nil {
				return err
			}
			defer mpv.Disconnect(ctx)

			// One command so the counters have something to show.
			if _, _, err := mpv.GetPropertyString(ctx, "mpv-version"); err != nil {
				return err
			}
			s := mpv.Stats()
			fmt.Printf("commands=%d rejected=%d transport_errors=%d events=%d dropped=%d parse_errors=%d\n",
				s.CommandsTotal, s.CommandsRejected, s.TransportErrors,
				s.EventsPublished, s.EventsDropped, s.ParseErrors)
			return nil
		},
	}
}
