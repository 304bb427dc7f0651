// CLAUDE:SUMMARY Durable file references: mint once, resolve many times, tolerate moved files.
// Package bookmark mints durable references to local files.
//
// A Ref survives process restarts: it is an opaque byte blob that can be
// persisted and later resolved back to a usable path. Resolution tolerates
// files that moved within their directory (reported as stale, advisory only)
// and fails only when the file cannot be located at all.
package bookmark

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// digestLen is how many leading bytes feed the content digest. Enough to
// tell media files apart without reading multi-gigabyte files whole.
const digestLen = 64 << 10

// payload is the encoded content of a Ref. Callers treat Ref bytes as
// opaque; the layout may change between versions as long as old blobs
// still decode.
type payload struct {
	Path    string `json:"path"`
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	ModTime int64  `json:"mod_time"` // unix nanoseconds
	Digest  string `json:"digest"`   // hex sha256 of the first digestLen bytes
}

// Ref is a durable reference to a local file.
type Ref struct {
	data []byte
}

// Resolution is the outcome of a successful Resolve.
type Resolution struct {
	// Path is a currently usable location of the referenced file.
	Path string
	// Stale reports that the file is no longer exactly where (or what) the
	// reference recorded. Advisory: playback proceeds, but the caller
	// should Remint to refresh the reference.
	Stale bool
}

// Create mints a durable reference from a path the process can currently
// read. Returns ErrUnsupported for directories, special files, or paths the
// process cannot open.
func Create(path string) (*Ref, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrUnsupported, abs)
	}
	// Verify read access now so a persisted reference is known-good at mint
	// time, and record a content digest while the file is open.
	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	sum, err := leadingDigest(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	data, err := json.Marshal(payload{
		Path:    abs,
		Name:    filepath.Base(abs),
		Size:    fi.Size(),
		ModTime: fi.ModTime().UnixNano(),
		Digest:  sum,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	return &Ref{data: data}, nil
}

// Resolve locates the referenced file again.
//
// Outcomes:
//   - file at the recorded path with matching fingerprint → not stale
//   - file at the recorded path with changed size/mtime → stale
//   - file gone from the recorded path but a sibling in the same directory
//     matches both fingerprint and content digest (renamed in place) →
//     new path, stale
//   - otherwise ErrUnresolvable
func (r *Ref) Resolve() (Resolution, error) {
	p, err := r.payload()
	if err != nil {
		return Resolution{}, fmt.Errorf("%w: corrupt reference: %v", ErrUnresolvable, err)
	}

	if fi, err := os.Stat(p.Path); err == nil && fi.Mode().IsRegular() {
		return Resolution{Path: p.Path, Stale: !p.matches(fi)}, nil
	}

	// Recorded path is gone. Look for the fingerprint under the original
	// parent directory, covering the common rename-in-place case. Size and
	// mtime alone collide (coarse filesystem clocks put files written in the
	// same tick on one fingerprint), so a candidate must also carry the
	// recorded content digest before it is accepted.
	dir := filepath.Dir(p.Path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Resolution{}, fmt.Errorf("%w: %s", ErrUnresolvable, p.Path)
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		if p.matches(fi) && p.sameContent(filepath.Join(dir, e.Name())) {
			return Resolution{Path: filepath.Join(dir, e.Name()), Stale: true}, nil
		}
	}
	return Resolution{}, fmt.Errorf("%w: %s", ErrUnresolvable, p.Path)
}

// Remint resolves the reference and mints fresh bytes from the resolved
// location. Call after a stale Resolve to stop paying the relocation cost on
// every subsequent Resolve.
func (r *Ref) Remint() (*Ref, error) {
	res, err := r.Resolve()
	if err != nil {
		return nil, err
	}
	return Create(res.Path)
}

// Name returns the display name recorded at mint time (the file's base
// name), or "" if the reference bytes are corrupt.
func (r *Ref) Name() string {
	p, err := r.payload()
	if err != nil {
		return ""
	}
	return p.Name
}

// MarshalBinary returns the opaque reference bytes for persistence.
func (r *Ref) MarshalBinary() ([]byte, error) {
	out := make([]byte, len(r.data))
	copy(out, r.data)
	return out, nil
}

// UnmarshalBinary restores a reference from persisted bytes. The bytes are
// not validated here; a corrupt blob surfaces as ErrUnresolvable on Resolve.
func (r *Ref) UnmarshalBinary(data []byte) error {
	r.data = make([]byte, len(data))
	copy(r.data, data)
	return nil
}

func (r *Ref) payload() (payload, error) {
	var p payload
	if err := json.Unmarshal(r.data, &p); err != nil {
		return payload{}, err
	}
	if p.Path == "" {
		return payload{}, fmt.Errorf("empty path")
	}
	return p, nil
}

// matches reports whether fi carries the fingerprint recorded in p.
// Size plus nanosecond mtime is stable across renames on every filesystem
// reprise targets, but it is not unique; relocation additionally checks
// sameContent.
func (p payload) matches(fi os.FileInfo) bool {
	return fi.Size() == p.Size && fi.ModTime().Equal(time.Unix(0, p.ModTime))
}

// sameContent reports whether the file at path carries the content digest
// recorded in p. References minted before digests existed have none and
// never relocate; they resolve only at their recorded path.
func (p payload) sameContent(path string) bool {
	if p.Digest == "" {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	sum, err := leadingDigest(f)
	return err == nil && sum == p.Digest
}

func leadingDigest(f *os.File) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, io.LimitReader(f, digestLen)); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
