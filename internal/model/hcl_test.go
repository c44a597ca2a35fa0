package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/datacheckgo/internal/resource"
)

const projectHCL = `
batch_definition "daily" {
  description = "One day of orders"
  datasource  = "warehouse"
  asset       = "orders"
}

expectation_suite "orders" {
  description = "Order sanity checks"

  expectation "expect_column_values_to_not_be_null" {
    column = "order_id"
  }

  expectation "expect_column_values_to_be_between" {
    column    = "amount"
    min_value = 0
    max_value = 10000.5
    strict    = true
    tags      = ["core", "billing"]
  }
}

validation_definition "orders_daily" {
  suite = expectation_suite.orders
  batch = batch_definition.daily
}

checkpoint "nightly" {
  validation_definitions = [validation_definition.orders_daily]
}
`

func TestDecodeHCL(t *testing.T) {
	m, err := decodeHCL([]byte(projectHCL), "project.hcl")
	require.NoError(t, err)

	t.Run("batch definition", func(t *testing.T) {
		bd, ok := m.BatchDefinitions["daily"]
		require.True(t, ok)
		assert.Equal(t, "warehouse", bd.Datasource)
		assert.Equal(t, "orders", bd.Asset)
		assert.Equal(t, "One day of orders", bd.Description)
		assert.Equal(t, "project.hcl", bd.SourceFile)
	})

	t.Run("expectation suite", func(t *testing.T) {
		suite, ok := m.Suites["orders"]
		require.True(t, ok)
		require.Len(t, suite.Expectations, 2)

		first := suite.Expectations[0]
		assert.Equal(t, "expect_column_values_to_not_be_null", first.Type)
		assert.Equal(t, "order_id", first.Kwargs["column"])

		second := suite.Expectations[1]
		assert.Equal(t, int64(0), second.Kwargs["min_value"])
		assert.Equal(t, 10000.5, second.Kwargs["max_value"])
		assert.Equal(t, true, second.Kwargs["strict"])
		assert.Equal(t, []any{"core", "billing"}, second.Kwargs["tags"])
	})

	t.Run("validation definition references", func(t *testing.T) {
		vd, ok := m.ValidationDefinitions["orders_daily"]
		require.True(t, ok)
		assert.Equal(t, resource.NewRef(resource.KindExpectationSuite, "orders"), vd.Suite)
		assert.Equal(t, resource.NewRef(resource.KindBatchDefinition, "daily"), vd.Batch)
	})

	t.Run("checkpoint references in order", func(t *testing.T) {
		cp, ok := m.Checkpoints["nightly"]
		require.True(t, ok)
		require.Len(t, cp.ValidationDefinitions, 1)
		assert.Equal(t, resource.NewRef(resource.KindValidationDefinition, "orders_daily"), cp.ValidationDefinitions[0])
	})
}

func TestDecodeHCL_CheckpointOrderPreserved(t *testing.T) {
	src := `
checkpoint "weekly" {
  validation_definitions = [
    validation_definition.b,
    validation_definition.a,
    validation_definition.c,
  ]
}
`
	m, err := decodeHCL([]byte(src), "weekly.hcl")
	require.NoError(t, err)

	cp := m.Checkpoints["weekly"]
	require.NotNil(t, cp)
	require.Len(t, cp.ValidationDefinitions, 3)
	assert.Equal(t, "b", cp.ValidationDefinitions[0].Name)
	assert.Equal(t, "a", cp.ValidationDefinitions[1].Name)
	assert.Equal(t, "c", cp.ValidationDefinitions[2].Name)
}

func TestDecodeHCL_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		contains string
	}{
		{
			name:     "syntax error",
			src:      `batch_definition "daily" {`,
			contains: "failed to parse",
		},
		{
			name:     "missing required attribute",
			src:      `batch_definition "daily" { datasource = "warehouse" }`,
			contains: "batch_definition",
		},
		{
			name: "wrong reference kind",
			src: `
validation_definition "v" {
  suite = batch_definition.daily
  batch = batch_definition.daily
}`,
			contains: "must be a expectation suite",
		},
		{
			name: "checkpoint value is not a list",
			src: `
checkpoint "c" {
  validation_definitions = validation_definition.v
}`,
			contains: "expected a list",
		},
		{
			name: "empty checkpoint",
			src: `
checkpoint "c" {
  validation_definitions = []
}`,
			contains: "at least one validation definition",
		},
		{
			name: "duplicate suite in one file",
			src: `
expectation_suite "orders" {}
expectation_suite "orders" {}
`,
			contains: "duplicate resource",
		},
		{
			name: "unknown block type",
			src: `
datasource "warehouse" {}
`,
			contains: "datasource",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeHCL([]byte(tc.src), "bad.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}
