// Package app wires the loader engine together: it owns the application
// logger, loads the configuration model, assembles the search path and the
// transform catalog, and drives resolution of the units the user asked for.
package app
