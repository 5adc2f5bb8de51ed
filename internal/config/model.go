package config

import "github.com/zclconf/go-cty/cty"

// Model is the unified, format-agnostic representation of a loader
// configuration file.
type Model struct {
	Loader     *LoaderSettings
	Remotes    []*Remote
	Transforms []*TransformRegistration
}

// LoaderSettings configures the engine itself.
type LoaderSettings struct {
	// SearchPath is the ordered list of local unit directories.
	SearchPath []string
	// DelegatePrefixes seeds the route-to-parent exclusion set.
	DelegatePrefixes []string
	// TransformPrefixes seeds the skip-transform exclusion set.
	TransformPrefixes []string
	// HostPrefix marks trusted host content for the sealing bypass.
	HostPrefix string
	// DumpPath, when non-empty, enables the post-transform image dump.
	DumpPath string
}

// Remote describes an HTTP mirror appended to the search path after the
// local directories.
type Remote struct {
	Name    string
	BaseURL string
}

// TransformRegistration is one ordered entry of the transform pipeline:
// a catalog identifier plus its evaluated option values. File order is
// pipeline order.
type TransformRegistration struct {
	ID      string
	Options map[string]cty.Value
}
