package remap

import (
	"context"
	"errors"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modforge/internal/loader"
	"github.com/vk/modforge/internal/registry"
)

// Remap maps names inside a namespace prefix: the final (installed) name
// gains FinalSuffix, the internal (storage) name gains InternalSuffix. An
// empty prefix applies to every name. The image itself passes through
// unchanged.
type Remap struct {
	prefix         string
	finalSuffix    string
	internalSuffix string
}

// New constructs a Remap from its options. At least one of "final_suffix"
// and "internal_suffix" must be set; "prefix" is optional.
func New(_ context.Context, options map[string]cty.Value) (loader.Transform, error) {
	prefix, _, err := registry.StringOption(options, "prefix")
	if err != nil {
		return nil, err
	}
	finalSuffix, _, err := registry.StringOption(options, "final_suffix")
	if err != nil {
		return nil, err
	}
	internalSuffix, _, err := registry.StringOption(options, "internal_suffix")
	if err != nil {
		return nil, err
	}
	if finalSuffix == "" && internalSuffix == "" {
		return nil, errors.New("remap: at least one of \"final_suffix\" and \"internal_suffix\" is required")
	}
	return &Remap{prefix: prefix, finalSuffix: finalSuffix, internalSuffix: internalSuffix}, nil
}

func (r *Remap) Name() string { return "remap" }

func (r *Remap) Transform(_, _ string, image []byte) ([]byte, error) {
	return image, nil
}

// MapName implements loader.NameTransformer.
func (r *Remap) MapName(external string) string {
	if !r.applies(external) || r.finalSuffix == "" {
		return external
	}
	return external + r.finalSuffix
}

// UnmapName implements loader.NameTransformer.
func (r *Remap) UnmapName(external string) string {
	if !r.applies(external) || r.internalSuffix == "" {
		return external
	}
	return external + r.internalSuffix
}

func (r *Remap) applies(name string) bool {
	return r.prefix == "" || strings.HasPrefix(name, r.prefix)
}
