package app

import (
	"context"
	"fmt"

	"github.com/vk/datacheckgo/internal/ctxlog"
	"github.com/vk/datacheckgo/internal/dag"
	"github.com/vk/datacheckgo/internal/model"
	"github.com/vk/datacheckgo/internal/resource"
	"github.com/vk/datacheckgo/internal/snapshot"
)

// Run executes the registration pass: load the declared resources, order them
// so dependencies register first, add them to the registry, and report
// per-resource diagnostics. It returns an error when any resource ends the
// run not added.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	m, err := model.Load(ctx, a.config.WorkerCount, a.config.ProjectPath)
	if err != nil {
		return fmt.Errorf("failed to load resource model: %w", err)
	}
	a.model = m

	if m.Len() == 0 {
		a.logger.Warn("No resources declared, nothing to register.")
		return nil
	}

	graph, descriptors, err := buildGraph(m)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}
	a.logger.Debug("Dependency graph built.", "node_count", graph.Len())

	order, err := graph.TopoSort()
	if err != nil {
		return fmt.Errorf("failed to order dependency graph: %w", err)
	}

	// Register in dependency order. A failed add is not fatal here; the
	// failure is captured and surfaced through the report so the user sees
	// every problem in one pass.
	addErrs := make(map[resource.Ref]error)
	for _, id := range order {
		desc, declared := descriptors[id]
		if !declared {
			// Referenced but never defined; it will surface as a missing
			// dependency of whatever referenced it.
			continue
		}
		if err := a.registry.Add(ctx, desc); err != nil {
			addErrs[desc.Ref()] = err
			a.logger.Debug("Resource could not be registered.", "ref", id, "error", err)
		}
	}

	notAdded := a.writeReport(ctx, m, addErrs)

	if a.config.SnapshotPath != "" {
		if err := snapshot.Save(a.config.SnapshotPath, a.registry); err != nil {
			return fmt.Errorf("failed to save registry snapshot: %w", err)
		}
		a.logger.Info("Registry snapshot saved.", "path", a.config.SnapshotPath, "resources", a.registry.Len())
	}

	a.logger.Debug("App.Run method finished.")
	if notAdded > 0 {
		return fmt.Errorf("%d of %d resources are not added", notAdded, m.Len())
	}
	return nil
}

// buildGraph turns the model into a dependency graph. References to resources
// that were never declared still become nodes, so ordering and cycle checks
// remain total; such resources simply never register.
func buildGraph(m *model.Model) (*dag.Graph, map[string]*resource.Descriptor, error) {
	graph := dag.New()
	descriptors := make(map[string]*resource.Descriptor)

	for _, desc := range m.Descriptors() {
		id := desc.Ref().String()
		graph.AddNode(id)
		descriptors[id] = desc
	}

	for _, desc := range m.Descriptors() {
		id := desc.Ref().String()
		for _, dep := range desc.DependsOn {
			depID := dep.String()
			graph.AddNode(depID)
			if err := graph.AddEdge(depID, id); err != nil {
				return nil, nil, err
			}
		}
	}

	if err := graph.DetectCycles(); err != nil {
		return nil, nil, err
	}

	return graph, descriptors, nil
}
