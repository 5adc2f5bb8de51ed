package loader

import (
	"bytes"
	"sync"
)

// unitCache holds installed units keyed by their final (post-transform) name.
// Installation is append-only for the life of the process: there is no
// invalidation path. LoadOrStore provides the at-most-once guarantee when
// concurrent resolutions of the same fresh name race to install.
type unitCache struct {
	m sync.Map // string -> *Unit
}

func (c *unitCache) get(name string) (*Unit, bool) {
	v, ok := c.m.Load(name)
	if !ok {
		return nil, false
	}
	return v.(*Unit), true
}

// install stores the unit unless one is already present under its name. It
// returns the winning unit and whether the caller lost the race.
func (c *unitCache) install(u *Unit) (*Unit, bool) {
	v, loaded := c.m.LoadOrStore(u.Name, u)
	return v.(*Unit), loaded
}

func (c *unitCache) len() int {
	n := 0
	c.m.Range(func(_, _ any) bool { n++; return true })
	return n
}

// nameSet is a concurrent set of names. Used for the invalid-name cache and
// the negative resource cache; membership is permanent unless removed through
// the explicit clear hook.
type nameSet struct {
	m sync.Map // string -> struct{}
}

func (s *nameSet) add(name string)           { s.m.Store(name, struct{}{}) }
func (s *nameSet) contains(name string) bool { _, ok := s.m.Load(name); return ok }
func (s *nameSet) remove(name string)        { s.m.Delete(name) }

func (s *nameSet) len() int {
	n := 0
	s.m.Range(func(_, _ any) bool { n++; return true })
	return n
}

// binaryCache holds resolved raw images keyed by internal name, together
// with the origin of the source that served them. The cached slice is owned
// by the cache: both put and get work on copies, so callers can never
// observe mutation of the cached original.
type binaryCache struct {
	mu sync.RWMutex
	m  map[string]binaryEntry
}

type binaryEntry struct {
	img    []byte
	origin *Origin
}

func newBinaryCache() *binaryCache {
	return &binaryCache{m: make(map[string]binaryEntry)}
}

func (c *binaryCache) get(name string) ([]byte, *Origin, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.m[name]
	if !ok {
		return nil, nil, false
	}
	return bytes.Clone(entry.img), entry.origin, true
}

func (c *binaryCache) put(name string, img []byte, origin *Origin) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[name] = binaryEntry{img: bytes.Clone(img), origin: origin}
}

func (c *binaryCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
