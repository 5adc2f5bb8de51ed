package loader

import (
	"context"
	"io"
	"strings"

	"github.com/vk/modforge/internal/ctxlog"
)

// reservedNames are filenames forbidden by Windows filesystems. Units whose
// bare name collides with one are stored under an underscore-prefixed path
// instead, and resolved through that indirection.
// https://learn.microsoft.com/en-us/windows/win32/fileio/naming-a-file#naming-conventions
var reservedNames = []string{
	"CON", "PRN", "AUX", "NUL",
	"COM1", "COM2", "COM3", "COM4", "COM5", "COM6", "COM7", "COM8", "COM9",
	"LPT1", "LPT2", "LPT3", "LPT4", "LPT5", "LPT6", "LPT7", "LPT8", "LPT9",
}

// PathKey maps a dotted unit name to its storage path key: dots become path
// separators and the image extension is appended.
func PathKey(name string) string {
	return strings.ReplaceAll(name, ".", "/") + ".bin"
}

// RawImage resolves the raw binary image for an external name without
// installing anything. Tooling and transforms that need peer content use this
// side door. The returned slice is the caller's to keep; absent content is
// reported as ok == false.
func (e *Engine) RawImage(ctx context.Context, externalName string) ([]byte, bool) {
	img, _, ok := e.resolveBinary(ctx, e.unmapName(externalName))
	return img, ok
}

// resolveBinary locates the backing image for an internal name, along with
// the provenance descriptor of the source that served it (nil for the parent
// fallback and origin-less sources). Order: negative resource cache, binary
// cache, reserved-name indirection, the primary search path, then the
// parent's resource fallback. A total miss is recorded in the negative cache
// and stays a miss until an explicit clear.
func (e *Engine) resolveBinary(ctx context.Context, name string) ([]byte, *Origin, bool) {
	if e.negative.contains(name) {
		return nil, nil, false
	}
	if img, origin, ok := e.binaries.get(name); ok {
		return img, origin, true
	}
	if !strings.Contains(name, ".") && len(name) >= 3 && len(name) <= 4 {
		for _, reserved := range reservedNames {
			if strings.EqualFold(reserved, name) {
				// Cache the result under the original name, not the variant.
				img, origin, ok := e.resolveBinary(ctx, "_"+name)
				if ok {
					e.binaries.put(name, img, origin)
				} else {
					e.negative.add(name)
				}
				return img, origin, ok
			}
		}
	}
	key := PathKey(name)
	img, origin, ok := e.readFromSources(ctx, key)
	if !ok && e.parent != nil {
		img, ok = e.parent.Image(ctx, key)
	}
	if !ok {
		e.negative.add(name)
		return nil, nil, false
	}
	e.binaries.put(name, img, origin)
	return img, origin, true
}

// readFromSources searches the primary search path in order, returning the
// image together with the serving source's origin so provenance is always
// attributed to the source the bytes actually came from. Read failures are
// recovered locally: they prevent resolution for this attempt but never
// propagate to the caller as a raised error.
func (e *Engine) readFromSources(ctx context.Context, key string) ([]byte, *Origin, bool) {
	logger := ctxlog.FromContext(ctx)
	for _, src := range e.sources.snapshot() {
		if !src.Contains(key) {
			continue
		}
		rc, err := src.Open(key)
		if err != nil {
			logger.Warn("Source failed to open unit image.", "source", src.Name(), "key", key, "error", err)
			continue
		}
		img, err := readFully(rc)
		closeSilently(rc)
		if err != nil {
			logger.Warn("Could not read unit image.", "source", src.Name(), "key", key, "error", err)
			return nil, nil, false
		}
		return img, src.Origin(), true
	}
	return nil, nil, false
}

// readFully drains the reader to the end before the caller closes it.
func readFully(r io.Reader) ([]byte, error) {
	return io.ReadAll(r)
}

// closeSilently closes best-effort; cleanup never raises.
func closeSilently(c io.Closer) {
	if c == nil {
		return
	}
	_ = c.Close()
}

// ClearNegativeEntries removes the given internal names from the negative
// resource cache, allowing a later attempt to hit the underlying sources
// again. This is the one cache tier with an invalidation hook; hot-reload
// controllers call it after republishing content.
func (e *Engine) ClearNegativeEntries(names ...string) {
	for _, name := range names {
		e.negative.remove(name)
	}
}
