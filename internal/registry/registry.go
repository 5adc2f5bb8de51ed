package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modforge/internal/loader"
)

// Factory constructs a transform from its configuration options.
type Factory func(ctx context.Context, options map[string]cty.Value) (loader.Transform, error)

// Module is the interface compiled-in transform modules implement to be
// registered with a catalog.
type Module interface {
	Register(c *Catalog)
}

// Catalog maps transform identifiers to factories for a single application
// instance.
type Catalog struct {
	factories map[string]Factory
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{factories: make(map[string]Factory)}
}

// RegisterFactory registers a factory under an identifier. A duplicate
// identifier is a programmer error.
func (c *Catalog) RegisterFactory(id string, f Factory) {
	if _, exists := c.factories[id]; exists {
		panic(fmt.Sprintf("transform factory with id '%s' already registered", id))
	}
	slog.Debug("Registering transform factory.", "id", id)
	c.factories[id] = f
}

// New constructs the identified transform. It implements loader.Catalog.
func (c *Catalog) New(ctx context.Context, id string, options map[string]cty.Value) (loader.Transform, error) {
	f, ok := c.factories[id]
	if !ok {
		return nil, fmt.Errorf("unknown transform id %q", id)
	}
	t, err := f(ctx, options)
	if err != nil {
		return nil, fmt.Errorf("constructing transform %q: %w", id, err)
	}
	if t == nil {
		return nil, fmt.Errorf("factory for transform %q returned nil", id)
	}
	return t, nil
}

// Identifiers returns the registered identifiers, sorted.
func (c *Catalog) Identifiers() []string {
	ids := make([]string, 0, len(c.factories))
	for id := range c.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
