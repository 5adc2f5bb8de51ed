package loader

import "sync"

// prefixSet is an unordered, append-only set of name prefixes. Routing tests
// membership, not precedence: any matching prefix is sufficient. Appends may
// race with lookups; readers iterate a snapshot taken under the read lock.
type prefixSet struct {
	mu       sync.RWMutex
	prefixes []string
}

func (s *prefixSet) add(prefix string) {
	if prefix == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.prefixes {
		if p == prefix {
			return
		}
	}
	s.prefixes = append(s.prefixes, prefix)
}

func (s *prefixSet) matches(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.prefixes {
		if len(name) >= len(p) && name[:len(p)] == p {
			return true
		}
	}
	return false
}

func (s *prefixSet) entries() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.prefixes))
	copy(out, s.prefixes)
	return out
}
