// Package remap provides the name-remapping transform. Besides the usual
// image pass-through it implements loader.NameTransformer, so registering it
// first makes it the engine's active name transformer: external names gain a
// configurable final suffix on installation and an internal suffix for binary
// resolution.
package remap

import (
	"github.com/vk/modforge/internal/registry"
)

// Module registers the remap transform factory.
type Module struct{}

func (m *Module) Register(c *registry.Catalog) {
	c.RegisterFactory("remap", New)
}
