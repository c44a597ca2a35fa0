package resource

// Kind identifies one of the registerable resource types. Its string form is
// also the HCL block name used in project configuration.
type Kind string

const (
	KindBatchDefinition      Kind = "batch_definition"
	KindExpectationSuite     Kind = "expectation_suite"
	KindValidationDefinition Kind = "validation_definition"
	KindCheckpoint           Kind = "checkpoint"
)

// kindSpec is the per-kind configuration record. The variation between kinds
// is pure data: which kinds a resource of this kind may depend on, and how it
// is labeled for humans.
type kindSpec struct {
	label      string
	childKinds []Kind
}

var kindSpecs = map[Kind]kindSpec{
	KindBatchDefinition: {
		label: "batch definition",
	},
	KindExpectationSuite: {
		label: "expectation suite",
	},
	KindValidationDefinition: {
		label:      "validation definition",
		childKinds: []Kind{KindExpectationSuite, KindBatchDefinition},
	},
	KindCheckpoint: {
		label:      "checkpoint",
		childKinds: []Kind{KindValidationDefinition},
	},
}

// kindOrder lists all kinds leaves-first. Registration and reporting follow
// this order so that dependencies are always handled before their dependents.
var kindOrder = []Kind{
	KindBatchDefinition,
	KindExpectationSuite,
	KindValidationDefinition,
	KindCheckpoint,
}

// Kinds returns all resource kinds in dependency order (leaves first).
func Kinds() []Kind {
	out := make([]Kind, len(kindOrder))
	copy(out, kindOrder)
	return out
}

// ParseKind validates a raw kind string.
func ParseKind(raw string) (Kind, error) {
	k := Kind(raw)
	if _, ok := kindSpecs[k]; !ok {
		return "", &UnknownKindError{Kind: raw}
	}
	return k, nil
}

// Valid reports whether the kind is one of the known resource kinds.
func (k Kind) Valid() bool {
	_, ok := kindSpecs[k]
	return ok
}

// Label returns the human-readable name of the kind, e.g. "expectation suite".
func (k Kind) Label() string {
	if spec, ok := kindSpecs[k]; ok {
		return spec.label
	}
	return string(k)
}

// ChildKinds returns the kinds this kind is allowed to depend on. Leaf kinds
// return nil.
func (k Kind) ChildKinds() []Kind {
	spec, ok := kindSpecs[k]
	if !ok || len(spec.childKinds) == 0 {
		return nil
	}
	out := make([]Kind, len(spec.childKinds))
	copy(out, spec.childKinds)
	return out
}

// HasDependencies reports whether resources of this kind depend on other
// resources.
func (k Kind) HasDependencies() bool {
	return len(kindSpecs[k].childKinds) > 0
}

// AllowsChild reports whether a resource of this kind may depend on a resource
// of the given kind.
func (k Kind) AllowsChild(child Kind) bool {
	for _, c := range kindSpecs[k].childKinds {
		if c == child {
			return true
		}
	}
	return false
}
