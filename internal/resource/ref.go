package resource

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRegex constrains resource names to the same identifier alphabet the
// configuration language accepts for block labels.
var nameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// Ref uniquely identifies a resource as a (kind, name) pair. Its canonical
// string form is "kind.name", e.g. "checkpoint.nightly".
type Ref struct {
	Kind Kind
	Name string
}

// NewRef builds a Ref without validation; use ParseRef for untrusted input.
func NewRef(kind Kind, name string) Ref {
	return Ref{Kind: kind, Name: name}
}

// ParseRef parses the canonical "kind.name" form into a Ref.
func ParseRef(raw string) (Ref, error) {
	if raw == "" {
		return Ref{}, fmt.Errorf("resource reference cannot be empty")
	}

	kindStr, name, ok := strings.Cut(raw, ".")
	if !ok {
		return Ref{}, fmt.Errorf("invalid resource reference %q: expected kind.name", raw)
	}

	kind, err := ParseKind(kindStr)
	if err != nil {
		return Ref{}, fmt.Errorf("invalid resource reference %q: %w", raw, err)
	}
	if !nameRegex.MatchString(name) {
		return Ref{}, fmt.Errorf("invalid resource reference %q: bad name %q", raw, name)
	}

	return Ref{Kind: kind, Name: name}, nil
}

// String serializes the Ref into its canonical form.
func (r Ref) String() string {
	return string(r.Kind) + "." + r.Name
}

// IsZero reports whether the Ref is the zero value.
func (r Ref) IsZero() bool {
	return r.Kind == "" && r.Name == ""
}
