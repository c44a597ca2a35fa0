// Package app is the composition root. It owns configuration merging
// (project file plus CLI flags), logger construction, and the registration
// run: load the declared resources, order them by dependency, register them,
// and report per-resource added-diagnostics.
package app
