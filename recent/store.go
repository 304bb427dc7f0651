// CLAUDE:SUMMARY MRU recent-videos store: load with self-healing, promote-to-front dedup, bounded cap.
// Package recent maintains the persisted list of recently watched videos.
//
// The list is an MRU sequence, most recently watched first, capped at ten
// entries, persisted as one JSON value in an injected kvstore.KV. Every
// mutation goes through the Store; the persisted value is rewritten whole on
// each change. Load self-heals: entries whose bookmark no longer resolves
// are dropped silently, corrupt payloads reset to an empty list.
package recent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/hazyhaar/reprise/bookmark"
	"github.com/hazyhaar/reprise/idgen"
	"github.com/hazyhaar/reprise/kvstore"
)

// Key is the kvstore key holding the serialized list.
const Key = "recent_videos"

// DefaultCap bounds the list length after any mutation.
const DefaultCap = 10

// DefaultResolveTTL bounds how long a resolved path is reused for dedup
// before the bookmark is resolved again.
const DefaultResolveTTL = 5 * time.Minute

// Store is the single source of truth for the recent list. All operations
// are serialized behind one mutex: promotion is a read-modify-write sequence
// that must not interleave.
type Store struct {
	mu     sync.Mutex
	kv     kvstore.KV
	logger *slog.Logger
	cap    int
	now    func() time.Time
	newID  idgen.Generator
	// paths memoizes entry ID → resolved path so AddOrPromote does not
	// re-stat every listed file on every call.
	paths *gocache.Cache
}

// Option customises Store behaviour.
type Option func(*Store)

// WithCap overrides the list cap. Values < 1 are ignored.
func WithCap(n int) Option {
	return func(s *Store) {
		if n >= 1 {
			s.cap = n
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the entry ID strategy.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(s *Store) { s.newID = gen }
}

// WithResolveTTL overrides how long resolved paths are memoized for dedup.
func WithResolveTTL(ttl time.Duration) Option {
	return func(s *Store) { s.paths = gocache.New(ttl, 2*ttl) }
}

// NewStore creates a Store over the given KV.
func NewStore(kv kvstore.KV, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		logger: logger.With(slog.String("component", "recent")),
		cap:    DefaultCap,
		now:    time.Now,
		newID:  idgen.Prefixed("rec_", idgen.Default),
		paths:  gocache.New(DefaultResolveTTL, 2*DefaultResolveTTL),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewEntry builds an Entry for a freshly minted bookmark. The display name
// defaults to the file's base name.
func (s *Store) NewEntry(ref *bookmark.Ref) Entry {
	return Entry{
		ID:          s.newID(),
		Bookmark:    ref,
		Name:        ref.Name(),
		LastWatched: s.now(),
	}
}

// Load returns the persisted list, most recent first. Corrupt or missing
// state yields an empty list; entries whose bookmark cannot be resolved are
// dropped. Load never fails.
func (s *Store) Load(ctx context.Context) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// Save persists the list, overwriting prior state. Returns
// ErrSerializationFailed (wrapped) on encode or write failure; callers log
// and keep their in-memory list.
func (s *Store) Save(ctx context.Context, list []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, list)
}

// AddOrPromote inserts e at the front. When the list already holds the
// same item (same ID, or bookmark resolving to the same path) it moves the
// existing entry to the front and bumps its timestamp. The list is truncated
// to the cap and persisted best-effort; the returned list is authoritative
// for the session regardless of save outcome.
func (s *Store) AddOrPromote(ctx context.Context, e Entry) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.loadLocked(ctx)
	newPath := s.resolvePath(e)

	idx := -1
	for i, cur := range list {
		if cur.ID == e.ID {
			idx = i
			break
		}
		if p := s.resolvePath(cur); p != "" && p == newPath {
			idx = i
			break
		}
	}

	if idx >= 0 {
		// Promote: keep the listed entry's identity, refresh the timestamp,
		// move to the front. A same-ID call carries reminted bookmark bytes
		// (the caller re-resolved a stale reference) and those replace the
		// stored ones; a path match keeps the listed bookmark.
		promoted := list[idx]
		if promoted.ID == e.ID && e.Bookmark != nil {
			promoted.Bookmark = e.Bookmark
		}
		promoted.LastWatched = s.now()
		list = append(list[:idx], list[idx+1:]...)
		list = append([]Entry{promoted}, list...)
	} else {
		e.LastWatched = s.now()
		list = append([]Entry{e}, list...)
	}

	if len(list) > s.cap {
		for _, evicted := range list[s.cap:] {
			s.logger.Debug("recent entry evicted", "id", evicted.ID, "name", evicted.Name)
			s.paths.Delete(evicted.ID)
		}
		list = list[:s.cap]
	}

	if err := s.saveLocked(ctx, list); err != nil {
		s.logger.Warn("recent list not persisted", "error", err)
	}
	return list
}

// Remove deletes the entry at index and persists the result. An
// out-of-range index is a no-op: deletion is always driven from a list the
// caller just rendered.
func (s *Store) Remove(ctx context.Context, index int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.loadLocked(ctx)
	if index < 0 || index >= len(list) {
		return list
	}
	s.paths.Delete(list[index].ID)
	list = append(list[:index], list[index+1:]...)
	if err := s.saveLocked(ctx, list); err != nil {
		s.logger.Warn("recent list not persisted", "error", err)
	}
	return list
}

func (s *Store) loadLocked(ctx context.Context) []Entry {
	raw, err := s.kv.Get(ctx, Key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.logger.Warn("recent list unreadable, starting empty", "error", err)
		return nil
	}

	var records []record
	if err := json.Unmarshal(raw, &records); err != nil {
		s.logger.Warn("recent list corrupt, starting empty", "error", err)
		return nil
	}

	list := make([]Entry, 0, len(records))
	for _, rec := range records {
		e, err := rec.toEntry()
		if err != nil {
			s.logger.Warn("dropping undecodable recent entry", "id", rec.ID, "error", err)
			s.paths.Delete(rec.ID)
			continue
		}
		res, err := e.Bookmark.Resolve()
		if err != nil {
			// Self-healing: the file is gone, forget it.
			s.logger.Info("dropping unresolvable recent entry", "id", e.ID, "name", e.Name)
			s.paths.Delete(e.ID)
			continue
		}
		s.paths.Set(e.ID, res.Path, gocache.DefaultExpiration)
		list = append(list, e)
	}
	if len(list) > s.cap {
		list = list[:s.cap]
	}
	return list
}

func (s *Store) saveLocked(ctx context.Context, list []Entry) error {
	records := make([]record, 0, len(list))
	for _, e := range list {
		rec, err := e.toRecord()
		if err != nil {
			return fmt.Errorf("%w: encode %s: %v", ErrSerializationFailed, e.ID, err)
		}
		records = append(records, rec)
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	if err := s.kv.Set(ctx, Key, raw); err != nil {
		return fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return nil
}

// resolvePath returns the current path of e's bookmark, memoized per entry
// ID. Returns "" when the bookmark cannot be resolved; callers must never
// treat two empty paths as equal.
func (s *Store) resolvePath(e Entry) string {
	if p, ok := s.paths.Get(e.ID); ok {
		return p.(string)
	}
	res, err := e.Bookmark.Resolve()
	if err != nil {
		return ""
	}
	s.paths.Set(e.ID, res.Path, gocache.DefaultExpiration)
	return res.Path
}
