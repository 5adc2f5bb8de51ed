package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modforge/internal/ctxlog"
)

// Catalog constructs transforms from string identifiers. The concrete catalog
// lives in internal/registry; the engine only needs construction.
type Catalog interface {
	New(ctx context.Context, id string, options map[string]cty.Value) (Transform, error)
}

// Options configures a new Engine. Sources and exclusion prefixes given here
// seed the respective append-only collections.
type Options struct {
	// Sources is the initial primary search path, in order.
	Sources []Source
	// Parent is the trusted lower-level loader. Optional; without it,
	// delegate-excluded names fail and there is no resource fallback tier.
	Parent Parent
	// Catalog resolves transform identifiers at registration time. Optional
	// for engines that only use AddTransform directly.
	Catalog Catalog
	// HostPrefix marks trusted host content: units whose internal name starts
	// with it bypass strict sealing re-verification.
	HostPrefix string
	// DumpFs, when set, receives each successfully installed unit's final
	// image under its path key. Debug side channel only; write failures are
	// ignored.
	DumpFs afero.Fs
	// DelegatePrefixes seeds the route-to-parent exclusion set.
	DelegatePrefixes []string
	// TransformPrefixes seeds the skip-transform exclusion set.
	TransformPrefixes []string
}

// Engine is the transforming unit loader. All methods are safe for
// concurrent use; resolution is synchronous and runs on the caller's
// goroutine to completion, failure, or a fatal sealing violation.
type Engine struct {
	sources    sourceList
	parent     Parent
	catalog    Catalog
	hostPrefix string
	dumpFs     afero.Fs

	delegateExclusions  prefixSet
	transformExclusions prefixSet

	transforms transformList
	renameMu   sync.RWMutex
	renamer    NameTransformer

	units      unitCache
	invalid    nameSet
	binaries   *binaryCache
	negative   nameSet
	namespaces *namespaceRegistry
}

// New constructs an Engine from the given options.
func New(opts Options) *Engine {
	e := &Engine{
		parent:     opts.Parent,
		catalog:    opts.Catalog,
		hostPrefix: opts.HostPrefix,
		dumpFs:     opts.DumpFs,
		binaries:   newBinaryCache(),
		namespaces: newNamespaceRegistry(),
	}
	for _, src := range opts.Sources {
		e.sources.add(src)
	}
	for _, p := range opts.DelegatePrefixes {
		e.delegateExclusions.add(p)
	}
	for _, p := range opts.TransformPrefixes {
		e.transformExclusions.add(p)
	}
	return e
}

// Resolve resolves an external unit name into an installed unit. Names in the
// delegate-exclusion set are forwarded to the parent untouched. A name that
// fails stays failed for the life of the process; a name that installs stays
// installed.
func (e *Engine) Resolve(ctx context.Context, name string) (*Unit, error) {
	logger := ctxlog.FromContext(ctx)
	if e.invalid.contains(name) {
		return nil, &NotFoundError{Name: name, Err: errors.New("in invalid unit cache")}
	}
	if e.delegateExclusions.matches(name) {
		if e.parent == nil {
			return nil, &NotFoundError{Name: name, Err: errors.New("delegated, but no parent loader configured")}
		}
		return e.parent.Load(ctx, name)
	}
	if u, ok := e.units.get(name); ok {
		return u, nil
	}
	runTransforms := !e.transformExclusions.matches(name)
	finalName := e.mapName(name)
	// The name transform is identity for most names; a minority install under
	// a different final name, so the cache is checked under both.
	if u, ok := e.units.get(finalName); ok {
		return u, nil
	}
	internalName := e.unmapName(name)

	image, origin, _ := e.resolveBinary(ctx, internalName)
	if runTransforms {
		var err error
		image, err = e.runTransforms(ctx, internalName, finalName, image)
		if err != nil {
			// Failures are recorded under the caller's name, successes under
			// the pipeline's output name.
			e.invalid.add(name)
			logger.Debug("Transform pipeline aborted.", "unit", name, "error", err)
			return nil, &NotFoundError{Name: name, Err: err}
		}
	}
	if len(image) == 0 {
		e.invalid.add(name)
		return nil, &NotFoundError{
			Name: name,
			Err:  fmt.Errorf("no image for %q (internal %q)", finalName, internalName),
		}
	}

	if namespace := namespaceOf(internalName); namespace != "" {
		bypass := e.hostPrefix != "" && strings.HasPrefix(internalName, e.hostPrefix)
		if err := e.namespaces.verify(namespace, origin, bypass); err != nil {
			// Fatal and loud: not cached, not retried.
			logger.Error("Namespace sealing violation.", "unit", name, "namespace", namespace, "error", err)
			return nil, err
		}
	}

	unit := &Unit{
		Name:      finalName,
		Namespace: namespaceOf(internalName),
		Image:     image,
		Origin:    origin,
	}
	winner, lost := e.units.install(unit)
	if !lost {
		e.dumpInstalled(ctx, finalName, image)
		logger.Debug("Unit installed.", "name", finalName, "external_name", name, "bytes", len(image))
	}
	return winner, nil
}

// RegisterTransform constructs the identified transform through the catalog,
// appends it to the pipeline, and adopts it as the active name transformer if
// it is the first one registered that offers name remapping. Construction
// failures are logged and swallowed: they must never propagate to the caller
// that triggered registration.
func (e *Engine) RegisterTransform(ctx context.Context, id string, options map[string]cty.Value) {
	logger := ctxlog.FromContext(ctx)
	if e.catalog == nil {
		logger.Error("No transform catalog configured, cannot register transform.", "id", id)
		return
	}
	t, err := e.catalog.New(ctx, id, options)
	if err != nil {
		logger.Warn("Could not register transform.", "id", id, "error", err)
		return
	}
	e.AddTransform(t)
	logger.Debug("Transform registered.", "id", id, "transform", t.Name())
}

// AddTransform appends an already-constructed transform to the pipeline.
func (e *Engine) AddTransform(t Transform) {
	if nt, ok := t.(NameTransformer); ok {
		e.renameMu.Lock()
		if e.renamer == nil {
			e.renamer = nt
		}
		e.renameMu.Unlock()
	}
	e.transforms.append(t)
}

// Transformers returns a snapshot of the registered pipeline, in order.
func (e *Engine) Transformers() []Transform {
	return e.transforms.snapshot()
}

// AddSource appends a source to the search path. The path only ever grows.
func (e *Engine) AddSource(s Source) {
	e.sources.add(s)
}

// Sources returns a snapshot of the search path, in order.
func (e *Engine) Sources() []Source {
	return e.sources.snapshot()
}

// AddDelegateExclusion routes all names with the given prefix to the parent
// loader.
func (e *Engine) AddDelegateExclusion(prefix string) {
	e.delegateExclusions.add(prefix)
}

// AddTransformExclusion exempts all names with the given prefix from the
// transform pipeline.
func (e *Engine) AddTransformExclusion(prefix string) {
	e.transformExclusions.add(prefix)
}

// mapName is the nil-safe final-name mapping through the active name
// transformer.
func (e *Engine) mapName(name string) string {
	e.renameMu.RLock()
	r := e.renamer
	e.renameMu.RUnlock()
	if r == nil {
		return name
	}
	if mapped := r.MapName(name); mapped != "" {
		return mapped
	}
	return name
}

// unmapName is the nil-safe internal-name mapping through the active name
// transformer.
func (e *Engine) unmapName(name string) string {
	e.renameMu.RLock()
	r := e.renamer
	e.renameMu.RUnlock()
	if r == nil {
		return name
	}
	if unmapped := r.UnmapName(name); unmapped != "" {
		return unmapped
	}
	return name
}

// Stats is a point-in-time snapshot of the engine's cache tiers, for
// diagnostics only.
type Stats struct {
	Units      int `json:"units"`
	Invalid    int `json:"invalid"`
	Binaries   int `json:"binaries"`
	Negative   int `json:"negative"`
	Namespaces int `json:"namespaces"`
	Transforms int `json:"transforms"`
	Sources    int `json:"sources"`
}

// Stats reports current cache-tier sizes.
func (e *Engine) Stats() Stats {
	return Stats{
		Units:      e.units.len(),
		Invalid:    e.invalid.len(),
		Binaries:   e.binaries.len(),
		Negative:   e.negative.len(),
		Namespaces: e.namespaces.len(),
		Transforms: e.transforms.len(),
		Sources:    e.sources.len(),
	}
}
