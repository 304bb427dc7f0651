// CLAUDE:SUMMARY Service wires the recent store and the playback session behind UI-shaped operations.
// Package reprise is the local-first core of a desktop video player: it
// durably remembers which files the user opened, recovers access to them
// across restarts, and keeps a bounded most-recently-watched list.
//
// The Service exposes exactly the operations a player front-end performs:
// open a picked file, replay a recent entry, prune the list, and drive the
// transport. All state lives in an injected kvstore.KV; the playback
// transport is an injected player.Session.
package reprise

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hazyhaar/reprise/bookmark"
	"github.com/hazyhaar/reprise/kvstore"
	"github.com/hazyhaar/reprise/player"
	"github.com/hazyhaar/reprise/recent"
)

// Service is the application core behind the control API.
type Service struct {
	store   *recent.Store
	session player.Session
	logger  *slog.Logger
}

// New creates a Service over the given persistence and playback
// capabilities. Extra recent.Options (test clocks, ID generators) are
// applied after the config-derived ones.
func New(kv kvstore.KV, session player.Session, logger *slog.Logger, cfg *Config, opts ...recent.Option) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	storeOpts := append([]recent.Option{
		recent.WithCap(cfg.RecentCap),
		recent.WithResolveTTL(cfg.ResolveTTL),
	}, opts...)
	return &Service{
		store:   recent.NewStore(kv, logger, storeOpts...),
		session: session,
		logger:  logger.With(slog.String("component", "service")),
	}
}

// OpenResult reports the outcome of opening a picked file.
type OpenResult struct {
	// List is the recent list after the open, most recent first.
	List []recent.Entry
	// Remembered is false when playback started but no durable reference
	// could be minted; the file will not appear on the list next launch.
	Remembered bool
}

// OpenFile starts playback of a picked file and records it on the recent
// list. A file that cannot be remembered still plays: the reference mint
// failure is logged, never surfaced as a playback error.
func (s *Service) OpenFile(ctx context.Context, path string) (OpenResult, error) {
	if err := s.session.Open(ctx, path); err != nil {
		return OpenResult{}, fmt.Errorf("open %s: %w", path, err)
	}
	opensTotal.WithLabelValues("picker").Inc()

	ref, err := bookmark.Create(path)
	if err != nil {
		rememberFailuresTotal.Inc()
		s.logger.Warn("cannot remember this file", "path", path, "error", err)
		list := s.store.Load(ctx)
		recentEntries.Set(float64(len(list)))
		return OpenResult{List: list}, nil
	}

	list := s.store.AddOrPromote(ctx, s.store.NewEntry(ref))
	recentEntries.Set(float64(len(list)))
	return OpenResult{List: list, Remembered: true}, nil
}

// PlayRecent resolves the entry at index, starts playback, and promotes the
// entry to the front. A stale reference is reminted before promotion so the
// stored bytes track the file's current location.
func (s *Service) PlayRecent(ctx context.Context, index int) ([]recent.Entry, error) {
	list := s.store.Load(ctx)
	if index < 0 || index >= len(list) {
		return list, ErrNoSuchEntry
	}
	e := list[index]

	res, err := e.Bookmark.Resolve()
	if err != nil {
		// The file vanished after the list was rendered; the next Load
		// drops the entry.
		resolveFailuresTotal.Inc()
		s.logger.Info("recent entry no longer resolvable", "id", e.ID, "name", e.Name)
		return list, fmt.Errorf("%s: %w", e.Name, err)
	}
	if res.Stale {
		if fresh, err := e.Bookmark.Remint(); err == nil {
			e.Bookmark = fresh
		}
	}

	if err := s.session.Open(ctx, res.Path); err != nil {
		return list, fmt.Errorf("open %s: %w", res.Path, err)
	}
	opensTotal.WithLabelValues("recent").Inc()

	list = s.store.AddOrPromote(ctx, e)
	recentEntries.Set(float64(len(list)))
	return list, nil
}

// Recents returns the current recent list, most recent first.
func (s *Service) Recents(ctx context.Context) []recent.Entry {
	list := s.store.Load(ctx)
	recentEntries.Set(float64(len(list)))
	return list
}

// RemoveRecent deletes the entry at index. Out-of-range indices are a no-op.
func (s *Service) RemoveRecent(ctx context.Context, index int) []recent.Entry {
	list := s.store.Remove(ctx, index)
	recentEntries.Set(float64(len(list)))
	return list
}

// Pause halts playback.
func (s *Service) Pause() error { return s.session.Pause() }

// Seek moves the playback position by the given number of seconds.
func (s *Service) Seek(bySeconds float64) error { return s.session.Seek(bySeconds) }

// SetRate resumes playback at the given rate.
func (s *Service) SetRate(rate float64) error { return s.session.Play(rate) }

// Rate returns the current playback rate, 0 when paused.
func (s *Service) Rate() float64 { return s.session.CurrentRate() }

// Close releases the playback session. The KV is owned by the caller.
func (s *Service) Close() error { return s.session.Close() }
