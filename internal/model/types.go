package model

import (
	"sort"

	"github.com/vk/datacheckgo/internal/resource"
)

// Model is the aggregated view of every resource declared in a project,
// regardless of which file or format it came from.
type Model struct {
	BatchDefinitions      map[string]*BatchDefinition
	Suites                map[string]*Suite
	ValidationDefinitions map[string]*ValidationDefinition
	Checkpoints           map[string]*Checkpoint
}

// NewModel creates an empty Model.
func NewModel() *Model {
	return &Model{
		BatchDefinitions:      make(map[string]*BatchDefinition),
		Suites:                make(map[string]*Suite),
		ValidationDefinitions: make(map[string]*ValidationDefinition),
		Checkpoints:           make(map[string]*Checkpoint),
	}
}

// BatchDefinition describes which slice of which data asset a validation runs
// against. It is a leaf resource.
type BatchDefinition struct {
	Name        string
	Description string
	Datasource  string
	Asset       string
	SourceFile  string
}

// Descriptor returns the registry-facing identity of the batch definition.
func (b *BatchDefinition) Descriptor() *resource.Descriptor {
	return &resource.Descriptor{
		Kind:        resource.KindBatchDefinition,
		Name:        b.Name,
		Description: b.Description,
		SourceFile:  b.SourceFile,
	}
}

// Expectation is a single expectation inside a suite: a type name plus opaque
// keyword arguments. Execution of expectations is out of scope; the arguments
// are carried as plain Go values.
type Expectation struct {
	Type   string
	Kwargs map[string]any
}

// Suite is a named collection of expectations. It is a leaf resource.
type Suite struct {
	Name         string
	Description  string
	Expectations []Expectation
	SourceFile   string
}

// Descriptor returns the registry-facing identity of the suite.
func (s *Suite) Descriptor() *resource.Descriptor {
	return &resource.Descriptor{
		Kind:        resource.KindExpectationSuite,
		Name:        s.Name,
		Description: s.Description,
		SourceFile:  s.SourceFile,
	}
}

// ValidationDefinition pairs an expectation suite with a batch definition.
type ValidationDefinition struct {
	Name        string
	Description string
	Suite       resource.Ref
	Batch       resource.Ref
	SourceFile  string
}

// Descriptor returns the registry-facing identity of the validation
// definition, with its dependencies in declaration order (suite, then batch).
func (v *ValidationDefinition) Descriptor() *resource.Descriptor {
	return &resource.Descriptor{
		Kind:        resource.KindValidationDefinition,
		Name:        v.Name,
		Description: v.Description,
		DependsOn:   []resource.Ref{v.Suite, v.Batch},
		SourceFile:  v.SourceFile,
	}
}

// Checkpoint groups one or more validation definitions for a single run.
type Checkpoint struct {
	Name                  string
	Description           string
	ValidationDefinitions []resource.Ref
	SourceFile            string
}

// Descriptor returns the registry-facing identity of the checkpoint, with its
// validation definitions in declaration order.
func (c *Checkpoint) Descriptor() *resource.Descriptor {
	deps := make([]resource.Ref, len(c.ValidationDefinitions))
	copy(deps, c.ValidationDefinitions)
	return &resource.Descriptor{
		Kind:        resource.KindCheckpoint,
		Name:        c.Name,
		Description: c.Description,
		DependsOn:   deps,
		SourceFile:  c.SourceFile,
	}
}

// Len returns the total number of declared resources.
func (m *Model) Len() int {
	return len(m.BatchDefinitions) + len(m.Suites) + len(m.ValidationDefinitions) + len(m.Checkpoints)
}

// Descriptors returns every declared resource as a descriptor, in a stable
// order: kinds leaves-first, names alphabetical within a kind.
func (m *Model) Descriptors() []*resource.Descriptor {
	out := make([]*resource.Descriptor, 0, m.Len())

	for _, name := range sortedKeys(m.BatchDefinitions) {
		out = append(out, m.BatchDefinitions[name].Descriptor())
	}
	for _, name := range sortedKeys(m.Suites) {
		out = append(out, m.Suites[name].Descriptor())
	}
	for _, name := range sortedKeys(m.ValidationDefinitions) {
		out = append(out, m.ValidationDefinitions[name].Descriptor())
	}
	for _, name := range sortedKeys(m.Checkpoints) {
		out = append(out, m.Checkpoints[name].Descriptor())
	}

	return out
}

// merge folds another model into this one, rejecting duplicate names per kind.
func (m *Model) merge(other *Model) error {
	for name, b := range other.BatchDefinitions {
		if _, exists := m.BatchDefinitions[name]; exists {
			return &resource.DuplicateResourceError{Ref: resource.NewRef(resource.KindBatchDefinition, name)}
		}
		m.BatchDefinitions[name] = b
	}
	for name, s := range other.Suites {
		if _, exists := m.Suites[name]; exists {
			return &resource.DuplicateResourceError{Ref: resource.NewRef(resource.KindExpectationSuite, name)}
		}
		m.Suites[name] = s
	}
	for name, v := range other.ValidationDefinitions {
		if _, exists := m.ValidationDefinitions[name]; exists {
			return &resource.DuplicateResourceError{Ref: resource.NewRef(resource.KindValidationDefinition, name)}
		}
		m.ValidationDefinitions[name] = v
	}
	for name, c := range other.Checkpoints {
		if _, exists := m.Checkpoints[name]; exists {
			return &resource.DuplicateResourceError{Ref: resource.NewRef(resource.KindCheckpoint, name)}
		}
		m.Checkpoints[name] = c
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
