// Package config defines the format-agnostic configuration model for the
// loader, along with the Loader interface for reading it from a concrete
// format. The HCL implementation lives in internal/hcl.
package config
