package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vk/modforge/internal/ctxlog"
)

// Transform rewrites one unit image before installation. Implementations may
// be stateful; the engine treats them as opaque and never retries them. A nil
// image means the unit had no resolvable content; a transform may turn nil
// into content or content into nil.
type Transform interface {
	// Name identifies the transform in logs.
	Name() string
	// Transform receives the internal (storage) name, the final name the unit
	// will install under, and the current image. Returning an error wrapping
	// ErrUnsupportedImage skips this transform; any other error aborts the
	// whole pipeline for this resolution attempt.
	Transform(internalName, finalName string, image []byte) ([]byte, error)
}

// NameTransformer remaps unit names in flight. At most one is active per
// engine: the first registered transform that also implements this interface
// wins, later candidates are ignored for the role. The two mappings are an
// advisory inverse pair; the engine never requires them to round-trip.
type NameTransformer interface {
	// MapName maps an external name to the final name the unit installs under.
	MapName(external string) string
	// UnmapName maps an external name to the internal name used for binary
	// resolution.
	UnmapName(external string) string
}

// transformList is the ordered, mutable pipeline. Registration order is a
// caller-visible contract: each transform sees the previous transform's
// output. Appends may race with pipeline runs; runs iterate a snapshot.
type transformList struct {
	mu   sync.RWMutex
	list []Transform
}

func (l *transformList) append(t Transform) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.list = append(l.list, t)
}

func (l *transformList) snapshot() []Transform {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Transform, len(l.list))
	copy(out, l.list)
	return out
}

func (l *transformList) len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.list)
}

// runTransforms feeds the image through every registered transform in
// registration order. No engine lock is held here, so a transform may
// reenter the engine (RawImage, Resolve) without deadlocking.
func (e *Engine) runTransforms(ctx context.Context, internalName, finalName string, image []byte) ([]byte, error) {
	logger := ctxlog.FromContext(ctx)
	for _, t := range e.transforms.snapshot() {
		next, err := t.Transform(internalName, finalName, image)
		if err != nil {
			if errors.Is(err, ErrUnsupportedImage) {
				logger.Warn("Transform encountered a newer image format than supported, skipping.",
					"transform", t.Name(), "internal_name", internalName, "final_name", finalName, "error", err)
				continue
			}
			return nil, fmt.Errorf("transform %q failed for %q: %w", t.Name(), finalName, err)
		}
		image = next
	}
	return image, nil
}
