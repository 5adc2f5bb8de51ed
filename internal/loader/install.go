package loader

import (
	"strings"
	"sync"
)

// Unit is the installed, ready-to-use result of a successful resolution.
// Once present in the loaded-unit cache, its name is permanently resolved to
// this value for the life of the process.
type Unit struct {
	// Name is the final (post-transform) name the unit is installed under.
	Name string
	// Namespace is the dotted namespace segment of the unit's internal name,
	// empty for top-level names.
	Namespace string
	// Image is the post-pipeline binary content.
	Image []byte
	// Origin is the provenance descriptor of the serving source, nil when
	// content came from the parent or an origin-less source.
	Origin *Origin
}

// namespaceOf returns the namespace segment of a dotted name.
func namespaceOf(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i]
	}
	return ""
}

// namespaceRegistry records, per namespace segment, the origin that first
// installed into it and whether that origin sealed it. Registration is
// append-only.
type namespaceRegistry struct {
	mu sync.Mutex
	m  map[string]*namespaceRecord
}

type namespaceRecord struct {
	origin string
	sealed bool
}

func newNamespaceRegistry() *namespaceRegistry {
	return &namespaceRegistry{m: make(map[string]*namespaceRecord)}
}

// verify checks the sealing invariant for one namespace segment and registers
// the segment on first sight. bypass skips the violation check for trusted
// host content, which would otherwise fail spuriously when the host namespace
// is served from several places.
func (r *namespaceRegistry) verify(namespace string, origin *Origin, bypass bool) error {
	label := ""
	if origin != nil {
		label = origin.Label
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.m[namespace]
	if !ok {
		r.m[namespace] = &namespaceRecord{
			origin: label,
			sealed: origin.IsSealed(namespace),
		}
		return nil
	}
	if bypass || rec.origin == label {
		return nil
	}
	if rec.sealed {
		return &SealingError{Namespace: namespace, Sealed: rec.origin, Origin: label}
	}
	// The reverse direction is a violation too: a namespace already populated
	// unsealed cannot be claimed sealed by a later origin.
	if origin.IsSealed(namespace) {
		return &SealingError{Namespace: namespace, Sealed: rec.origin, Origin: label}
	}
	return nil
}

func (r *namespaceRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.m)
}
