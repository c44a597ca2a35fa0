// Package registry is the in-memory store of registered resources.
//
// A resource exists once its descriptor has been added; a resource is *added*
// in the framework's sense only if it and all of its transitive dependencies
// are present. The registry computes that answer as an added-diagnostics
// value per resource rather than a bare boolean, so callers can report every
// missing dependency at once.
//
// Dependency-bearing resources cannot be added while their dependencies are
// missing; the one deliberate exception is the resource's own absence, since
// the add call itself is about to cure it.
package registry
