package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/datacheckgo/internal/resource"
)

func suiteDesc(name string) *resource.Descriptor {
	return &resource.Descriptor{Kind: resource.KindExpectationSuite, Name: name}
}

func batchDesc(name string) *resource.Descriptor {
	return &resource.Descriptor{Kind: resource.KindBatchDefinition, Name: name}
}

func vdDesc(name, suite, batch string) *resource.Descriptor {
	return &resource.Descriptor{
		Kind: resource.KindValidationDefinition,
		Name: name,
		DependsOn: []resource.Ref{
			resource.NewRef(resource.KindExpectationSuite, suite),
			resource.NewRef(resource.KindBatchDefinition, batch),
		},
	}
}

func cpDesc(name string, vds ...string) *resource.Descriptor {
	desc := &resource.Descriptor{Kind: resource.KindCheckpoint, Name: name}
	for _, vd := range vds {
		desc.DependsOn = append(desc.DependsOn, resource.NewRef(resource.KindValidationDefinition, vd))
	}
	return desc
}

func TestAdd_Leaf(t *testing.T) {
	ctx := context.Background()
	r := New()

	require.NoError(t, r.Add(ctx, suiteDesc("orders")))
	assert.True(t, r.Has(resource.NewRef(resource.KindExpectationSuite, "orders")))
	assert.Equal(t, 1, r.Len())
}

func TestAdd_Duplicate(t *testing.T) {
	ctx := context.Background()
	r := New()

	require.NoError(t, r.Add(ctx, suiteDesc("orders")))
	err := r.Add(ctx, suiteDesc("orders"))

	var dupErr *resource.DuplicateResourceError
	require.ErrorAs(t, err, &dupErr)
}

func TestAdd_InvalidDescriptor(t *testing.T) {
	ctx := context.Background()
	r := New()

	err := r.Add(ctx, &resource.Descriptor{Kind: resource.Kind("datasource"), Name: "prod"})
	require.Error(t, err)
	assert.Zero(t, r.Len())
}

func TestAdd_ParentWithMissingDependencies(t *testing.T) {
	ctx := context.Background()
	r := New()

	err := r.Add(ctx, vdDesc("orders_daily", "orders", "daily"))
	require.Error(t, err)

	var agg *resource.RelatedResourcesNotAddedError
	require.ErrorAs(t, err, &agg)

	// Both missing dependencies are reported in declaration order, then the
	// definition's own absence.
	require.Len(t, agg.Errors, 3)
	assert.Equal(t, resource.NewRef(resource.KindExpectationSuite, "orders"), agg.Errors[0].Ref)
	assert.Equal(t, resource.NewRef(resource.KindBatchDefinition, "daily"), agg.Errors[1].Ref)
	assert.Equal(t, resource.NewRef(resource.KindValidationDefinition, "orders_daily"), agg.Errors[2].Ref)

	assert.False(t, r.Has(resource.NewRef(resource.KindValidationDefinition, "orders_daily")))
}

func TestAdd_ParentAfterDependencies(t *testing.T) {
	ctx := context.Background()
	r := New()

	require.NoError(t, r.Add(ctx, suiteDesc("orders")))
	require.NoError(t, r.Add(ctx, batchDesc("daily")))
	require.NoError(t, r.Add(ctx, vdDesc("orders_daily", "orders", "daily")))
	require.NoError(t, r.Add(ctx, cpDesc("nightly", "orders_daily")))

	assert.Equal(t, 4, r.Len())
}

func TestDiagnostics_Leaf(t *testing.T) {
	ctx := context.Background()
	r := New()

	missing := r.Diagnostics(ctx, resource.NewRef(resource.KindExpectationSuite, "orders"))
	assert.False(t, missing.IsAdded())
	require.Len(t, missing.Errors(), 1)

	require.NoError(t, r.Add(ctx, suiteDesc("orders")))
	added := r.Diagnostics(ctx, resource.NewRef(resource.KindExpectationSuite, "orders"))
	assert.True(t, added.IsAdded())
	assert.NoError(t, added.Err())
}

func TestDiagnostics_RegisteredChain(t *testing.T) {
	ctx := context.Background()
	r := New()

	require.NoError(t, r.Add(ctx, suiteDesc("orders")))
	require.NoError(t, r.Add(ctx, batchDesc("daily")))
	require.NoError(t, r.Add(ctx, vdDesc("orders_daily", "orders", "daily")))
	require.NoError(t, r.Add(ctx, cpDesc("nightly", "orders_daily")))

	diag := r.Diagnostics(ctx, resource.NewRef(resource.KindCheckpoint, "nightly"))
	assert.True(t, diag.IsAdded())
	assert.NoError(t, diag.Err())
}

func TestDiagnostics_UnregisteredParent(t *testing.T) {
	ctx := context.Background()
	r := New()

	ref := resource.NewRef(resource.KindCheckpoint, "nightly")
	diag := r.Diagnostics(ctx, ref)

	assert.False(t, diag.IsAdded())
	errs := diag.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, ref, errs[0].Ref)
}

func TestEnsureAdded(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a leaf that is missing", func(t *testing.T) {
		r := New()
		require.NoError(t, r.EnsureAdded(ctx, suiteDesc("orders")))
		assert.True(t, r.Has(resource.NewRef(resource.KindExpectationSuite, "orders")))
	})

	t.Run("no-op for an already added leaf", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Add(ctx, suiteDesc("orders")))
		require.NoError(t, r.EnsureAdded(ctx, suiteDesc("orders")))
		assert.Equal(t, 1, r.Len())
	})

	t.Run("adds a parent whose only problem is itself", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Add(ctx, suiteDesc("orders")))
		require.NoError(t, r.Add(ctx, batchDesc("daily")))

		require.NoError(t, r.EnsureAdded(ctx, vdDesc("orders_daily", "orders", "daily")))
		assert.True(t, r.Has(resource.NewRef(resource.KindValidationDefinition, "orders_daily")))
	})

	t.Run("refuses a parent with missing dependencies", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Add(ctx, suiteDesc("orders")))

		err := r.EnsureAdded(ctx, vdDesc("orders_daily", "orders", "daily"))
		var agg *resource.RelatedResourcesNotAddedError
		require.ErrorAs(t, err, &agg)
		require.Len(t, agg.Errors, 2)

		// The batch definition failure comes before the definition's own.
		assert.Equal(t, resource.KindBatchDefinition, agg.Errors[0].Ref.Kind)
		assert.Equal(t, resource.KindValidationDefinition, agg.Errors[1].Ref.Kind)

		assert.False(t, r.Has(resource.NewRef(resource.KindValidationDefinition, "orders_daily")))
	})

	t.Run("no-op for an already added parent", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Add(ctx, suiteDesc("orders")))
		require.NoError(t, r.Add(ctx, batchDesc("daily")))
		require.NoError(t, r.Add(ctx, vdDesc("orders_daily", "orders", "daily")))

		require.NoError(t, r.EnsureAdded(ctx, vdDesc("orders_daily", "orders", "daily")))
		assert.Equal(t, 3, r.Len())
	})
}

func TestAll_SortedByRef(t *testing.T) {
	ctx := context.Background()
	r := New()

	require.NoError(t, r.Add(ctx, suiteDesc("zeta")))
	require.NoError(t, r.Add(ctx, suiteDesc("alpha")))
	require.NoError(t, r.Add(ctx, batchDesc("daily")))

	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, "batch_definition.daily", all[0].Ref().String())
	assert.Equal(t, "expectation_suite.alpha", all[1].Ref().String())
	assert.Equal(t, "expectation_suite.zeta", all[2].Ref().String())
}
