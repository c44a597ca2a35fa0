// Package model provides the Go struct representation of a project's declared
// validation resources.
//
// Resources are declared in HCL: expectation_suite, batch_definition,
// validation_definition and checkpoint blocks. Expectation suites may also be
// declared in the YAML suite-file format (*.suite.yaml). Both sources are
// merged into one Model, which is the input for dependency-graph construction
// and registration.
//
// The model layer captures identity, payload and declared dependency
// references. It performs structural validation (block shape, reference
// syntax, duplicate names) but does not decide whether referenced resources
// exist; that is the registry's job, reported through added-diagnostics.
package model
