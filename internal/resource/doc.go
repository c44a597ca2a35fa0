// Package resource defines the registerable entities of the validation
// framework and the typed errors that describe failed registrations.
//
// A resource is a named entity of one of four kinds: batch definitions and
// expectation suites are leaves, while validation definitions and checkpoints
// depend on other resources. A resource counts as "added" only once it and all
// of its transitive dependencies have been registered. The kind-to-dependency
// relationships are pure data, so they live in a small per-kind configuration
// record rather than in behavior.
package resource
