// Package loader implements the transforming unit loader at the heart of
// modforge.
//
// The Engine resolves dotted unit names into installed units. A resolution
// request is first routed against the delegate-exclusion set; excluded names
// are forwarded verbatim to the parent loader and never touch local state.
// Local requests check the loaded-unit cache, compute the internal/final name
// pair through the active name transformer, fetch the raw image through the
// layered sources (binary and negative caches first), run the ordered
// transform pipeline unless the name is transform-excluded, verify namespace
// sealing, and install the result exactly once under its final name.
//
// Every cache tier is guarded independently so concurrent lookups never
// corrupt shared state, and no tier holds a lock across a call into
// pluggable transform or source code, which keeps reentrant resolution safe.
// Duplicate concurrent work for the same fresh name is tolerated; duplicate
// installation is not, and is prevented by a compare-and-insert on the
// loaded-unit cache.
package loader
