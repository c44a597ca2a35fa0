package resource

import (
	"fmt"
	"strings"
)

// NotAddedError means a single resource has not been registered. It is the
// leaf condition of the diagnostics taxonomy: one error per missing resource,
// with a message that prescribes the corrective action.
type NotAddedError struct {
	Ref Ref
}

// NewNotAdded constructs a NotAddedError for the given resource.
func NewNotAdded(ref Ref) *NotAddedError {
	return &NotAddedError{Ref: ref}
}

func (e *NotAddedError) Error() string {
	return fmt.Sprintf("%s %q has not been added; add it to the registry before use", e.Ref.Kind.Label(), e.Ref.Name)
}

// RelatedResourcesNotAddedError aggregates the not-added errors of a resource
// and its dependencies. The cause list is ordered: dependency failures first,
// the resource's own failure last, so the user sees every missing dependency
// at once rather than just the first.
type RelatedResourcesNotAddedError struct {
	Ref    Ref
	Errors []*NotAddedError
}

// NewRelatedNotAdded constructs the aggregate error for the given resource,
// preserving the order of the supplied causes.
func NewRelatedNotAdded(ref Ref, errs []*NotAddedError) *RelatedResourcesNotAddedError {
	return &RelatedResourcesNotAddedError{Ref: ref, Errors: errs}
}

func (e *RelatedResourcesNotAddedError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %q has unregistered related resources:", e.Ref.Kind.Label(), e.Ref.Name)
	for _, cause := range e.Errors {
		sb.WriteString("\n  - ")
		sb.WriteString(cause.Error())
	}
	return sb.String()
}

// Unwrap exposes the underlying causes to errors.Is / errors.As.
func (e *RelatedResourcesNotAddedError) Unwrap() []error {
	out := make([]error, len(e.Errors))
	for i, cause := range e.Errors {
		out[i] = cause
	}
	return out
}

// DuplicateResourceError means the same (kind, name) pair was registered or
// defined more than once.
type DuplicateResourceError struct {
	Ref Ref
}

func (e *DuplicateResourceError) Error() string {
	return fmt.Sprintf("duplicate resource: %s", e.Ref)
}

// UnknownKindError means a raw string does not name a known resource kind.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown resource kind %q", e.Kind)
}
