package player

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

func TestNullTransport(t *testing.T) {
	// WHAT: Null tracks open/play/pause/rate transitions.
	// WHY: Tests and the bare shell rely on it behaving like a real transport.
	n := NewNull(slog.Default())

	if err := n.Play(1.0); !errors.Is(err, ErrNothingOpen) {
		t.Fatalf("play before open: got %v, want ErrNothingOpen", err)
	}

	if err := n.Open(context.Background(), "/videos/a.mp4"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := n.Path(); got != "/videos/a.mp4" {
		t.Errorf("path: got %q", got)
	}
	if got := n.CurrentRate(); got != 1.0 {
		t.Errorf("rate after open: got %v, want 1.0", got)
	}

	if err := n.Play(2.0); err != nil {
		t.Fatalf("play: %v", err)
	}
	if got := n.CurrentRate(); got != 2.0 {
		t.Errorf("rate: got %v, want 2.0", got)
	}

	if err := n.Pause(); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if got := n.CurrentRate(); got != 0 {
		t.Errorf("rate after pause: got %v, want 0", got)
	}

	if err := n.Seek(-10); err != nil {
		t.Fatalf("seek: %v", err)
	}

	if err := n.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := n.Path(); got != "" {
		t.Errorf("path after close: got %q", got)
	}
}
