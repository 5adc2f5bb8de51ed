package loader

import (
	"context"
	"io"
	"sync"

	"github.com/spf13/afero"
)

// Origin is the provenance descriptor a source attaches to the units it
// serves. Namespace prefixes listed in Sealed are bound to this origin: once
// a unit from a sealed namespace is installed, units from other origins are
// rejected for that namespace.
type Origin struct {
	Label  string
	Sealed []string
}

// IsSealed reports whether the origin seals the given namespace segment.
func (o *Origin) IsSealed(namespace string) bool {
	if o == nil {
		return false
	}
	for _, p := range o.Sealed {
		if len(namespace) >= len(p) && namespace[:len(p)] == p {
			return true
		}
	}
	return false
}

// Source is one layer of the engine's primary search path.
type Source interface {
	// Name identifies the source in logs and stats.
	Name() string
	// Contains reports whether the source can serve the given path key.
	Contains(key string) bool
	// Open returns a reader for the path key. The engine drains it fully and
	// closes it silently.
	Open(key string) (io.ReadCloser, error)
	// Origin returns the source's provenance descriptor, or nil when the
	// source makes no provenance claim.
	Origin() *Origin
}

// Parent is the trusted lower-level loader. Names in the delegate-exclusion
// set are forwarded to it verbatim, and it serves as the fallback layer
// beneath the primary search path for raw image resolution.
type Parent interface {
	Load(ctx context.Context, name string) (*Unit, error)
	Image(ctx context.Context, key string) ([]byte, bool)
}

// DirSource serves unit images from the root of an afero filesystem.
type DirSource struct {
	fs     afero.Fs
	name   string
	origin *Origin
}

// NewDirSource creates a source over the given filesystem root.
func NewDirSource(fs afero.Fs, name string, origin *Origin) *DirSource {
	return &DirSource{fs: fs, name: name, origin: origin}
}

func (s *DirSource) Name() string { return s.name }

func (s *DirSource) Contains(key string) bool {
	ok, err := afero.Exists(s.fs, key)
	return err == nil && ok
}

func (s *DirSource) Open(key string) (io.ReadCloser, error) {
	return s.fs.Open(key)
}

func (s *DirSource) Origin() *Origin { return s.origin }

// sourceList is the engine's append-only search path. Entries may be added
// after construction but never removed; readers iterate a snapshot.
type sourceList struct {
	mu      sync.RWMutex
	sources []Source
}

func (l *sourceList) add(s Source) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sources = append(l.sources, s)
}

func (l *sourceList) snapshot() []Source {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Source, len(l.sources))
	copy(out, l.sources)
	return out
}

func (l *sourceList) len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sources)
}
