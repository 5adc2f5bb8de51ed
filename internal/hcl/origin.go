package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/afero"

	"github.com/vk/modforge/internal/loader"
	"github.com/vk/modforge/internal/schema"
)

// OriginManifestName is the optional provenance manifest at a source root.
const OriginManifestName = "origin.hcl"

// ParseOriginManifest reads the origin manifest at the root of a source
// filesystem. A missing manifest is not an error: the source simply makes no
// provenance claim and nil is returned.
func ParseOriginManifest(fs afero.Fs) (*loader.Origin, error) {
	ok, err := afero.Exists(fs, OriginManifestName)
	if err != nil || !ok {
		return nil, err
	}
	src, err := afero.ReadFile(fs, OriginManifestName)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", OriginManifestName, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, OriginManifestName)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", OriginManifestName, diags)
	}

	var manifest schema.OriginManifest
	if diags := gohcl.DecodeBody(file.Body, nil, &manifest); diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %w", OriginManifestName, diags)
	}
	if manifest.Origin == nil {
		return nil, nil
	}
	if manifest.Origin.Label == "" {
		return nil, fmt.Errorf("%s: origin label must not be empty", OriginManifestName)
	}
	return &loader.Origin{
		Label:  manifest.Origin.Label,
		Sealed: manifest.Origin.Sealed,
	}, nil
}
