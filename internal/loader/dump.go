package loader

import (
	"context"
	"path"

	"github.com/spf13/afero"

	"github.com/vk/modforge/internal/ctxlog"
)

// dumpInstalled persists a successfully installed unit's final image for
// offline inspection. Failures are silently ignored and never affect
// resolution outcome.
func (e *Engine) dumpInstalled(ctx context.Context, finalName string, image []byte) {
	if e.dumpFs == nil {
		return
	}
	logger := ctxlog.FromContext(ctx)
	key := PathKey(finalName)
	if dir := path.Dir(key); dir != "." {
		if err := e.dumpFs.MkdirAll(dir, 0o755); err != nil {
			logger.Debug("Could not create dump directory.", "dir", dir, "error", err)
			return
		}
	}
	if err := afero.WriteFile(e.dumpFs, key, image, 0o644); err != nil {
		logger.Debug("Could not dump unit image.", "key", key, "error", err)
	}
}
