// Package diagnostics answers the question "was this resource added
// successfully?" for a single resource instance.
//
// A diagnostics value wraps an ordered list of not-added errors. The resource
// is considered added iff the list is empty. Construction never fails, and
// inspecting the result (IsAdded) does not involve error control flow; turning
// the recorded errors into a returnable failure is a separate, explicit call.
//
// Resources without dependencies use Child diagnostics, where at most one
// error is meaningful. Resources with dependencies use Parent diagnostics,
// which merge in the diagnostics of their children so that an aggregate
// failure lists every missing dependency before the resource's own failure.
package diagnostics

import (
	"slices"

	"github.com/vk/datacheckgo/internal/resource"
)

// Diagnostics is the read side shared by both variants.
type Diagnostics interface {
	// IsAdded reports whether the resource and all tracked dependencies
	// registered successfully, i.e. the error list is empty.
	IsAdded() bool

	// Errors returns the recorded not-added errors in reported order.
	Errors() []*resource.NotAddedError

	// Err converts the recorded errors into a single returnable error, or nil
	// when the resource is added.
	Err() error
}

// Child is the diagnostics of a resource without dependencies. Such a
// resource fails independently, so only the first recorded error is surfaced.
type Child struct {
	errs []*resource.NotAddedError
}

// NewChild constructs child diagnostics over the given errors, preserving
// their order.
func NewChild(errs ...*resource.NotAddedError) *Child {
	return &Child{errs: slices.Clone(errs)}
}

// IsAdded implements Diagnostics.
func (c *Child) IsAdded() bool {
	return len(c.errs) == 0
}

// Errors implements Diagnostics.
func (c *Child) Errors() []*resource.NotAddedError {
	return slices.Clone(c.errs)
}

// Err returns the first recorded error, or nil when the resource is added.
func (c *Child) Err() error {
	if c.IsAdded() {
		return nil
	}
	return c.errs[0]
}

// Parent is the diagnostics of a resource with dependencies. It remembers the
// resource's own identity so that it can distinguish "I am missing" from "my
// dependencies are missing".
type Parent struct {
	ref  resource.Ref
	errs []*resource.NotAddedError
}

// NewParent constructs parent diagnostics for the given resource over its own
// errors (typically zero or one: the resource's own not-added error).
func NewParent(ref resource.Ref, errs ...*resource.NotAddedError) *Parent {
	return &Parent{ref: ref, errs: slices.Clone(errs)}
}

// Ref returns the identity of the resource these diagnostics describe.
func (p *Parent) Ref() resource.Ref {
	return p.ref
}

// IsAdded implements Diagnostics.
func (p *Parent) IsAdded() bool {
	return len(p.errs) == 0
}

// Errors implements Diagnostics.
func (p *Parent) Errors() []*resource.NotAddedError {
	return slices.Clone(p.errs)
}

// UpdateWithChildren merges child diagnostics into this one. Child errors are
// prepended ahead of the parent's own errors, and the relative order among the
// children is preserved, keeping the reported list in causal order: dependency
// failures first, the parent's own failure last.
func (p *Parent) UpdateWithChildren(children ...Diagnostics) {
	var merged []*resource.NotAddedError
	for _, child := range children {
		merged = append(merged, child.Errors()...)
	}
	p.errs = append(merged, p.errs...)
}

// Err wraps the full ordered error list in the resource's aggregate
// "related resources not added" error, or returns nil when added.
func (p *Parent) Err() error {
	if p.IsAdded() {
		return nil
	}
	return resource.NewRelatedNotAdded(p.ref, slices.Clone(p.errs))
}

// ErrIgnoringParentNotAdded behaves like Err except that it suppresses the
// failure when the only recorded error is this resource's own not-added
// error. Callers use it when they are about to register the resource on the
// user's behalf: missing dependencies still fail, the resource's own missing
// registration does not.
//
// The suppression check matches the parent's specific identity, not merely any
// error of the parent's kind.
func (p *Parent) ErrIgnoringParentNotAdded() error {
	if p.IsAdded() || p.onlyParentMissing() {
		return nil
	}
	return resource.NewRelatedNotAdded(p.ref, slices.Clone(p.errs))
}

// onlyParentMissing reports whether the sole recorded error is the parent's
// own not-added error.
func (p *Parent) onlyParentMissing() bool {
	return len(p.errs) == 1 && p.errs[0].Ref == p.ref
}
