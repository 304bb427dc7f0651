package recent

import (
	"time"

	"github.com/hazyhaar/reprise/bookmark"
)

// Entry is one remembered video. ID and the bookmark bytes are immutable
// after creation; Name and LastWatched may be updated by the store.
type Entry struct {
	ID          string
	Bookmark    *bookmark.Ref
	Name        string
	LastWatched time.Time
}

// record is the persisted form of an Entry. Bookmark bytes serialize as
// base64 through encoding/json; timestamps are ms epoch, matching the
// integer-millisecond convention used across hazyhaar schemas.
type record struct {
	ID          string `json:"id"`
	Bookmark    []byte `json:"bookmark"`
	Name        string `json:"name"`
	LastWatched int64  `json:"last_watched"`
}

func (e Entry) toRecord() (record, error) {
	blob, err := e.Bookmark.MarshalBinary()
	if err != nil {
		return record{}, err
	}
	return record{
		ID:          e.ID,
		Bookmark:    blob,
		Name:        e.Name,
		LastWatched: e.LastWatched.UnixMilli(),
	}, nil
}

func (r record) toEntry() (Entry, error) {
	ref := &bookmark.Ref{}
	if err := ref.UnmarshalBinary(r.Bookmark); err != nil {
		return Entry{}, err
	}
	return Entry{
		ID:          r.ID,
		Bookmark:    ref,
		Name:        r.Name,
		LastWatched: time.UnixMilli(r.LastWatched),
	}, nil
}
