package resource

import "fmt"

// Descriptor is the registry-facing representation of a resource: its
// identity, its declared dependencies in declaration order, and provenance for
// error messages. The payload of a resource (expectations, batch parameters)
// stays in the model layer; the registry only needs identity and edges.
type Descriptor struct {
	Kind        Kind
	Name        string
	Description string

	// DependsOn lists direct dependencies in the order they were declared.
	// Diagnostics preserve this order when reporting missing dependencies.
	DependsOn []Ref

	// SourceFile records where the resource was defined, when known.
	SourceFile string
}

// Ref returns the resource's identity.
func (d *Descriptor) Ref() Ref {
	return Ref{Kind: d.Kind, Name: d.Name}
}

// Validate checks the descriptor's structural integrity: a known kind, a legal
// name, and dependencies restricted to the kinds this kind may depend on.
func (d *Descriptor) Validate() error {
	if !d.Kind.Valid() {
		return &UnknownKindError{Kind: string(d.Kind)}
	}
	if !nameRegex.MatchString(d.Name) {
		return fmt.Errorf("invalid %s name %q", d.Kind.Label(), d.Name)
	}

	for _, dep := range d.DependsOn {
		if !dep.Kind.Valid() {
			return &UnknownKindError{Kind: string(dep.Kind)}
		}
		if !d.Kind.AllowsChild(dep.Kind) {
			return fmt.Errorf("%s %q cannot depend on %s %q", d.Kind.Label(), d.Name, dep.Kind.Label(), dep.Name)
		}
	}

	return nil
}
