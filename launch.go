package mpvipc

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"
)

const sockPathPrefix = "/tmp/mpvipc-sock_"

// Process is a handle on an mpv process started by [Launch].
type Process struct {
	// SocketPath is the IPC socket the process was started with.
	SocketPath string

	process *os.Process
}

// Launch starts an mpv process with an IPC socket at a fresh path, waits
// for the socket to appear, and connects to it. Extra arguments are passed
// to mpv verbatim after the flags Launch sets itself.
//
// This is a convenience over the core client: the library otherwise never
// manages the player process, and Launch does not supervise it either.
// If mpv exits, the connection just fails like any broken transport.
func Launch(ctx context.Context, opts Options, args ...string) (*Process, *Mpv, error) {
	binary, err := exec.LookPath("mpv")
	if err != nil {
		return nil, nil, fmt.Errorf("mpv not found: %w", err)
	}

	sockPath := sockPathPrefix + uuid.NewString()
	cmdArgs := append([]string{
		"--idle",
		"--input-ipc-server=" + sockPath,
	}, args...)

	cmd := exec.CommandContext(ctx, binary, cmdArgs...)
	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("failed to start mpv: %w", err)
	}
	proc := &Process{SocketPath: sockPath, process: cmd.Process}

	if err := waitForSocket(ctx, sockPath, 2*time.Second); err != nil {
		_ = proc.Close()
		return nil, nil, err
	}

	mpv, err := ConnectWithOptions(ctx, sockPath, opts)
	if err != nil {
		_ = proc.Close()
		return nil, nil, err
	}
	return proc, mpv, nil
}

func waitForSocket(ctx context.Context, path string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("mpv did not create socket at %s within %s", path, timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// Close kills the mpv process and removes its socket file.
func (p *Process) Close() error {
	var closeErr error
	if p.process != nil {
		if err := p.process.Kill(); err != nil {
			closeErr = fmt.Errorf("killing mpv process: %w", err)
		}
		p.process = nil
	}

	if p.SocketPath != "" {
		if err := os.Remove(p.SocketPath); err != nil && !os.IsNotExist(err) {
			if closeErr != nil {
				return fmt.Errorf("multiple errors: %w, socket removal: %v", closeErr, err)
			}
			return fmt.Errorf("removing socket file: %w", err)
		}
		p.SocketPath = ""
	}

	return closeErr
}
