package player

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"

	"github.com/dhowden/tag"
)

type process struct {
	cmd  *exec.Cmd
	done chan struct{}
}

// ExecPlayer plays files by running an external command with the file path appended.
// At most one process runs at a time.
type ExecPlayer struct {
	command string
	args    []string

	mu      sync.Mutex
	current *process
}

// NewExecPlayer creates a player that runs command with args followed by the file path.
func NewExecPlayer(command string, args []string) *ExecPlayer {
	return &ExecPlayer{
		command: command,
		args:    append([]string(nil), args...),
	}
}

// Play stops any current playback and starts playing path without waiting for it to end.
// The returned channel is closed once the process exits, stopped or not.
func (p *ExecPlayer) Play(path string) (<-chan struct{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.stopLocked(); err != nil {
		return nil, err
	}

	logFormat(path)

	cmd := exec.Command(p.command, append(append([]string(nil), p.args...), path)...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start player %s: %w", p.command, err)
	}

	proc := &process{cmd: cmd, done: make(chan struct{})}
	go func() {
		if err := cmd.Wait(); err != nil {
			slog.Debug("Player process exited", "path", path, "error", err)
		}
		close(proc.done)
	}()
	p.current = proc
	slog.Debug("Playback started", "command", p.command, "path", path, "pid", cmd.Process.Pid)
	return proc.done, nil
}

// Stop ends the current playback and waits for the process to exit.
func (p *ExecPlayer) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopLocked()
}

// Playing reports whether a player process is still running.
func (p *ExecPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return false
	}
	select {
	case <-p.current.done:
		return false
	default:
		return true
	}
}

func (p *ExecPlayer) stopLocked() error {
	proc := p.current
	if proc == nil {
		return nil
	}
	p.current = nil

	select {
	case <-proc.done:
		return nil
	default:
	}

	if err := proc.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("failed to stop player: %w", err)
	}
	<-proc.done
	slog.Debug("Playback stopped", "pid", proc.cmd.Process.Pid)
	return nil
}

func logFormat(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	format, fileType, err := tag.Identify(f)
	if err != nil {
		slog.Debug("Could not identify preview format", "path", path, "error", err)
		return
	}
	slog.Debug("Preview format", "path", path, "format", format, "type", fileType)
}
