// Package nullify provides a transform that withdraws units matching
// configured name prefixes by turning their present image into an absent one.
// Later pipeline stages and the installer see those units as having no
// content.
package nullify

import (
	"github.com/vk/modforge/internal/registry"
)

// Module registers the nullify transform factory.
type Module struct{}

func (m *Module) Register(c *registry.Catalog) {
	c.RegisterFactory("nullify", New)
}
