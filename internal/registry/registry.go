package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vk/datacheckgo/internal/ctxlog"
	"github.com/vk/datacheckgo/internal/diagnostics"
	"github.com/vk/datacheckgo/internal/resource"
)

// Registry holds every registered resource for a single application instance.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	resources map[resource.Ref]*resource.Descriptor
}

// New creates and initializes an empty Registry.
func New() *Registry {
	return &Registry{
		resources: make(map[resource.Ref]*resource.Descriptor),
	}
}

// Add registers a resource. It fails with a DuplicateResourceError when the
// ref is already present, and for dependency-bearing kinds it fails with the
// kind's aggregate error when any declared dependency is missing. The
// resource's own absence never blocks its own add.
func (r *Registry) Add(ctx context.Context, desc *resource.Descriptor) error {
	logger := ctxlog.FromContext(ctx)

	if err := desc.Validate(); err != nil {
		return fmt.Errorf("invalid resource descriptor: %w", err)
	}
	ref := desc.Ref()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.resources[ref]; exists {
		return &resource.DuplicateResourceError{Ref: ref}
	}

	if desc.Kind.HasDependencies() {
		diag := r.parentDiagnosticsLocked(desc)
		if err := diag.ErrIgnoringParentNotAdded(); err != nil {
			return err
		}
	}

	r.resources[ref] = desc
	logger.Debug("Resource registered.", "ref", ref.String(), "source", desc.SourceFile)
	return nil
}

// EnsureAdded registers the resource on the caller's behalf if its own absence
// is the only thing standing in the way. Missing dependencies are still a
// failure; a resource that is already added is a no-op.
func (r *Registry) EnsureAdded(ctx context.Context, desc *resource.Descriptor) error {
	if err := desc.Validate(); err != nil {
		return fmt.Errorf("invalid resource descriptor: %w", err)
	}

	ref := desc.Ref()
	if !desc.Kind.HasDependencies() {
		if r.Has(ref) {
			return nil
		}
		return r.Add(ctx, desc)
	}

	r.mu.RLock()
	diag := r.parentDiagnosticsLocked(desc)
	r.mu.RUnlock()

	if err := diag.ErrIgnoringParentNotAdded(); err != nil {
		return err
	}
	if diag.IsAdded() {
		return nil
	}
	// The only recorded error is this resource's own absence.
	return r.Add(ctx, desc)
}

// Has reports whether a resource with the given ref has been registered.
func (r *Registry) Has(ref resource.Ref) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.resources[ref]
	return ok
}

// Get returns the registered descriptor for the given ref.
func (r *Registry) Get(ref resource.Ref) (*resource.Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.resources[ref]
	return desc, ok
}

// Len returns the number of registered resources.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.resources)
}

// All returns every registered descriptor, sorted by canonical ref string.
func (r *Registry) All() []*resource.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*resource.Descriptor, 0, len(r.resources))
	for _, desc := range r.resources {
		out = append(out, desc)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Ref().String() < out[j].Ref().String()
	})
	return out
}

// Diagnostics computes added-diagnostics for the given ref. Leaf kinds yield
// child diagnostics; dependency-bearing kinds yield parent diagnostics with
// all transitive dependency failures merged in, dependency errors first in
// declaration order, the resource's own error last.
func (r *Registry) Diagnostics(ctx context.Context, ref resource.Ref) diagnostics.Diagnostics {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.diagnosticsLocked(ref)
}

func (r *Registry) diagnosticsLocked(ref resource.Ref) diagnostics.Diagnostics {
	desc, registered := r.resources[ref]

	if !ref.Kind.HasDependencies() {
		if registered {
			return diagnostics.NewChild()
		}
		return diagnostics.NewChild(resource.NewNotAdded(ref))
	}

	var parent *diagnostics.Parent
	if registered {
		parent = diagnostics.NewParent(ref)
	} else {
		parent = diagnostics.NewParent(ref, resource.NewNotAdded(ref))
	}

	// An unregistered parent carries no dependency list, so only its own
	// absence can be reported.
	if !registered {
		return parent
	}

	children := make([]diagnostics.Diagnostics, 0, len(desc.DependsOn))
	for _, dep := range desc.DependsOn {
		children = append(children, r.diagnosticsLocked(dep))
	}
	parent.UpdateWithChildren(children...)

	return parent
}

// parentDiagnosticsLocked computes diagnostics for a descriptor that may not
// be registered yet, using the descriptor's own dependency list. The caller
// must hold at least a read lock.
func (r *Registry) parentDiagnosticsLocked(desc *resource.Descriptor) *diagnostics.Parent {
	ref := desc.Ref()

	var parent *diagnostics.Parent
	if _, registered := r.resources[ref]; registered {
		parent = diagnostics.NewParent(ref)
	} else {
		parent = diagnostics.NewParent(ref, resource.NewNotAdded(ref))
	}

	children := make([]diagnostics.Diagnostics, 0, len(desc.DependsOn))
	for _, dep := range desc.DependsOn {
		children = append(children, r.diagnosticsLocked(dep))
	}
	parent.UpdateWithChildren(children...)

	return parent
}
