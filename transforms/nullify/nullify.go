package nullify

import (
	"context"
	"errors"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modforge/internal/loader"
	"github.com/vk/modforge/internal/registry"
)

// Nullify drops images whose final name matches any configured prefix.
type Nullify struct {
	prefixes []string
}

// New constructs a Nullify from its options. The "prefixes" option is
// required and non-empty.
func New(_ context.Context, options map[string]cty.Value) (loader.Transform, error) {
	prefixes, ok, err := registry.StringListOption(options, "prefixes")
	if err != nil {
		return nil, err
	}
	if !ok || len(prefixes) == 0 {
		return nil, errors.New("nullify: option \"prefixes\" is required")
	}
	return &Nullify{prefixes: prefixes}, nil
}

func (n *Nullify) Name() string { return "nullify" }

func (n *Nullify) Transform(_, finalName string, image []byte) ([]byte, error) {
	for _, p := range n.prefixes {
		if strings.HasPrefix(finalName, p) {
			return nil, nil
		}
	}
	return image, nil
}
