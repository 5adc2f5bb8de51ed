package stamp

import (
	"context"
	"errors"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modforge/internal/loader"
	"github.com/vk/modforge/internal/registry"
)

// Stamp appends a fixed marker to present images. Absent images pass through
// untouched.
type Stamp struct {
	marker []byte
}

// New constructs a Stamp from its options. The "marker" option is required.
func New(_ context.Context, options map[string]cty.Value) (loader.Transform, error) {
	marker, ok, err := registry.StringOption(options, "marker")
	if err != nil {
		return nil, err
	}
	if !ok || marker == "" {
		return nil, errors.New("stamp: option \"marker\" is required")
	}
	return &Stamp{marker: []byte(marker)}, nil
}

func (s *Stamp) Name() string { return "stamp" }

func (s *Stamp) Transform(_, _ string, image []byte) ([]byte, error) {
	if image == nil {
		return nil, nil
	}
	out := make([]byte, 0, len(image)+len(s.marker))
	out = append(out, image...)
	out = append(out, s.marker...)
	return out, nil
}
