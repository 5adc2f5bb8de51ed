// Package stamp provides a transform that appends a configurable marker to
// every image it sees. Its main use is making pipeline order observable: two
// stamps registered in sequence leave their markers in registration order.
package stamp

import (
	"github.com/vk/modforge/internal/registry"
)

// Module registers the stamp transform factory.
type Module struct{}

func (m *Module) Register(c *registry.Catalog) {
	c.RegisterFactory("stamp", New)
}
