// Package schema defines the HCL-facing struct forms of the loader
// configuration. internal/hcl decodes into these and translates them into
// the format-agnostic config model.
package schema

import "github.com/hashicorp/hcl/v2"

// Config represents the top-level structure of a loader configuration file.
type Config struct {
	Loader     *LoaderBlock      `hcl:"loader,block"`
	Remotes    []*RemoteBlock    `hcl:"remote,block"`
	Transforms []*TransformBlock `hcl:"transform,block"`
}

// LoaderBlock represents the `loader` block.
type LoaderBlock struct {
	SearchPath        []string `hcl:"search_path"`
	DelegatePrefixes  []string `hcl:"delegate_prefixes,optional"`
	TransformPrefixes []string `hcl:"transform_prefixes,optional"`
	HostPrefix        string   `hcl:"host_prefix,optional"`
	DumpPath          string   `hcl:"dump_path,optional"`
}

// RemoteBlock represents a `remote "<name>"` mirror block.
type RemoteBlock struct {
	Name    string `hcl:"name,label"`
	BaseURL string `hcl:"base_url"`
}

// TransformBlock represents a `transform "<id>"` pipeline entry. The block
// body carries free-form options evaluated per transform.
type TransformBlock struct {
	ID      string   `hcl:"id,label"`
	Options hcl.Body `hcl:",remain"`
}

// OriginManifest represents the optional origin.hcl file at the root of a
// unit source directory.
type OriginManifest struct {
	Origin *OriginBlock `hcl:"origin,block"`
}

// OriginBlock declares a source's provenance label and the namespace
// prefixes sealed to it.
type OriginBlock struct {
	Label  string   `hcl:"label"`
	Sealed []string `hcl:"sealed,optional"`
}
