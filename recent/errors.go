package recent

import "errors"

// ErrSerializationFailed is returned by Save when the list could not be
// encoded or written. Persistence failure is non-fatal: the in-memory list
// stays authoritative for the running session.
var ErrSerializationFailed = errors.New("recent: list serialization failed")
