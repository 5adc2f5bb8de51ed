package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/afero"

	"github.com/vk/modforge/internal/config"
	"github.com/vk/modforge/internal/ctxlog"
	"github.com/vk/modforge/internal/schema"
)

// Loader reads loader configuration files from an afero filesystem.
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a Loader over the given filesystem.
func NewLoader(fs afero.Fs) *Loader {
	return &Loader{fs: fs}
}

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading loader configuration.", "path", path)

	src, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing configuration file %s: %w", path, diags)
	}

	var cfg schema.Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decoding configuration file %s: %w", path, diags)
	}
	if cfg.Loader == nil {
		return nil, fmt.Errorf("configuration file %s: missing required 'loader' block", path)
	}

	model, err := translate(&cfg)
	if err != nil {
		return nil, fmt.Errorf("translating configuration file %s: %w", path, err)
	}
	logger.Debug("Loader configuration loaded.",
		"search_path", model.Loader.SearchPath,
		"remotes", len(model.Remotes),
		"transforms", len(model.Transforms))
	return model, nil
}
