// Package testutil provides the shared test harness: an engine standing on an
// in-memory filesystem populated from a plain map of unit names to images,
// plus instrumented sources, parents, and transforms for observing engine
// behavior.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"path"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/vk/modforge/internal/ctxlog"
	"github.com/vk/modforge/internal/loader"
	"github.com/vk/modforge/internal/registry"
	"github.com/vk/modforge/transforms/nullify"
	"github.com/vk/modforge/transforms/remap"
	"github.com/vk/modforge/transforms/stamp"
)

// Options tweaks harness engine construction.
type Options struct {
	Origin            *loader.Origin
	Parent            loader.Parent
	DelegatePrefixes  []string
	TransformPrefixes []string
	HostPrefix        string
	WithDump          bool
}

// Harness bundles an engine over an in-memory filesystem.
type Harness struct {
	Engine  *loader.Engine
	Source  *CountingSource
	Fs      afero.Fs
	DumpFs  afero.Fs
	Catalog *registry.Catalog
}

// NewHarness builds an engine whose single directory source serves the given
// units from an in-memory filesystem. The source is wrapped in a
// CountingSource so tests can assert how often the underlying storage was
// consulted.
func NewHarness(t *testing.T, units map[string][]byte, opts Options) *Harness {
	t.Helper()

	fs := afero.NewMemMapFs()
	WriteUnits(t, fs, units)

	catalog := registry.New()
	for _, m := range []registry.Module{&remap.Module{}, &stamp.Module{}, &nullify.Module{}} {
		m.Register(catalog)
	}

	src := &CountingSource{Inner: loader.NewDirSource(fs, "memfs", opts.Origin)}
	var dumpFs afero.Fs
	if opts.WithDump {
		dumpFs = afero.NewMemMapFs()
	}
	engine := loader.New(loader.Options{
		Sources:           []loader.Source{src},
		Parent:            opts.Parent,
		Catalog:           catalog,
		HostPrefix:        opts.HostPrefix,
		DumpFs:            dumpFs,
		DelegatePrefixes:  opts.DelegatePrefixes,
		TransformPrefixes: opts.TransformPrefixes,
	})

	return &Harness{Engine: engine, Source: src, Fs: fs, DumpFs: dumpFs, Catalog: catalog}
}

// WriteUnits stores unit images on a filesystem under their path keys.
func WriteUnits(t *testing.T, fs afero.Fs, units map[string][]byte) {
	t.Helper()
	for name, img := range units {
		key := loader.PathKey(name)
		if dir := path.Dir(key); dir != "." {
			require.NoError(t, fs.MkdirAll(dir, 0o755))
		}
		require.NoError(t, afero.WriteFile(fs, key, img, 0o644))
	}
}

// Context returns a context carrying a logger that discards everything.
func Context() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}
