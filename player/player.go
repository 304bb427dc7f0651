// Package player defines the playback boundary. reprise owns remembering
// files, not decoding them: a Session is whatever actually plays video
// (libmpv bridge, OS media framework, a test double). The core hands it a
// resolved path and transport commands and consumes nothing back.
package player

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrNothingOpen is returned by transport commands before any file was opened.
var ErrNothingOpen = errors.New("player: no file open")

// Session is a playback transport.
type Session interface {
	// Open loads the file at path for playback.
	Open(ctx context.Context, path string) error
	// Play starts or resumes playback at the given rate (1.0 = normal).
	Play(rate float64) error
	// Pause halts playback, keeping the file open.
	Pause() error
	// Seek moves the position by the given number of seconds (negative = back).
	Seek(bySeconds float64) error
	// CurrentRate returns the active playback rate, 0 when paused.
	CurrentRate() float64
	// Close releases the session.
	Close() error
}

// Null is a Session that tracks transport state and logs transitions without
// rendering anything. Used by the shell when no real backend is wired, and
// by tests.
type Null struct {
	mu     sync.Mutex
	logger *slog.Logger
	path   string
	rate   float64
}

var _ Session = (*Null)(nil)

// NewNull creates a no-op session.
func NewNull(logger *slog.Logger) *Null {
	return &Null{logger: logger.With(slog.String("component", "player"))}
}

func (n *Null) Open(_ context.Context, path string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.path = path
	n.rate = 1.0
	n.logger.Info("open", "path", path)
	return nil
}

func (n *Null) Play(rate float64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.path == "" {
		return ErrNothingOpen
	}
	if rate <= 0 {
		rate = 1.0
	}
	n.rate = rate
	n.logger.Info("play", "rate", rate)
	return nil
}

func (n *Null) Pause() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.path == "" {
		return ErrNothingOpen
	}
	n.rate = 0
	n.logger.Info("pause")
	return nil
}

func (n *Null) Seek(bySeconds float64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.path == "" {
		return ErrNothingOpen
	}
	n.logger.Info("seek", "by_seconds", bySeconds)
	return nil
}

func (n *Null) CurrentRate() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.rate
}

func (n *Null) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.path = ""
	n.rate = 0
	return nil
}

// Path returns the currently open file. Test helper.
func (n *Null) Path() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path
}
