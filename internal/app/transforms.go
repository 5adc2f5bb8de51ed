package app

import (
	"github.com/vk/modforge/internal/registry"
	"github.com/vk/modforge/transforms/nullify"
	"github.com/vk/modforge/transforms/remap"
	"github.com/vk/modforge/transforms/stamp"
)

// coreTransforms is the definitive list of all transform modules that are
// compiled into the modforge binary.
var coreTransforms = []registry.Module{
	&remap.Module{},
	&stamp.Module{},
	&nullify.Module{},
}
