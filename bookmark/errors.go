package bookmark

import "errors"

// ErrUnsupported is returned when a durable reference cannot be minted for a
// path (missing, unreadable, or not a regular file).
var ErrUnsupported = errors.New("bookmark: cannot mint durable reference for this file")

// ErrUnresolvable is returned when a previously minted reference no longer
// points to a locatable file.
var ErrUnresolvable = errors.New("bookmark: referenced file cannot be located")
