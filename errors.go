package reprise

import "errors"

// ErrNoSuchEntry is returned when a recent-list index does not exist
// (the entry was evicted, removed, or dropped as unresolvable).
var ErrNoSuchEntry = errors.New("reprise: no recent entry at that index")
