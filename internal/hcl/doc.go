// Package hcl implements the HCL concrete form of the loader configuration:
// the config.Loader that reads a loader file into the format-agnostic model,
// and the parser for per-source origin manifests.
package hcl
