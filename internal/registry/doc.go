// Package registry provides the transform catalog: the mapping between the
// string identifiers used in loader configuration (e.g. transform "stamp" {})
// and the compiled Go factories that construct the transforms.
//
// During application startup the catalog is populated by the compiled-in
// transform modules; the engine then constructs pipeline entries from it by
// identifier, in configuration order.
package registry
