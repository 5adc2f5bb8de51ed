package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modforge/internal/config"
	"github.com/vk/modforge/internal/schema"
)

// translate converts the HCL-specific schema into the agnostic model.
func translate(cfg *schema.Config) (*config.Model, error) {
	hostPrefix := cfg.Loader.HostPrefix
	if hostPrefix == "" {
		hostPrefix = "host."
	}
	model := &config.Model{
		Loader: &config.LoaderSettings{
			SearchPath:        cfg.Loader.SearchPath,
			DelegatePrefixes:  cfg.Loader.DelegatePrefixes,
			TransformPrefixes: cfg.Loader.TransformPrefixes,
			HostPrefix:        hostPrefix,
			DumpPath:          cfg.Loader.DumpPath,
		},
	}
	for _, r := range cfg.Remotes {
		if r.BaseURL == "" {
			return nil, fmt.Errorf("remote %q: base_url must not be empty", r.Name)
		}
		model.Remotes = append(model.Remotes, &config.Remote{Name: r.Name, BaseURL: r.BaseURL})
	}
	for _, t := range cfg.Transforms {
		options, err := evalBodyAttributes(t.Options)
		if err != nil {
			return nil, fmt.Errorf("transform %q: %w", t.ID, err)
		}
		model.Transforms = append(model.Transforms, &config.TransformRegistration{
			ID:      t.ID,
			Options: options,
		})
	}
	return model, nil
}

// evalBodyAttributes evaluates every attribute of a free-form block body into
// a constant cty value. Transform options have no evaluation context, so
// expressions referencing variables are rejected here.
func evalBodyAttributes(body hcl.Body) (map[string]cty.Value, error) {
	if body == nil {
		return nil, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	if len(attrs) == 0 {
		return nil, nil
	}
	options := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("option %q: %w", name, diags)
		}
		options[name] = val
	}
	return options, nil
}
