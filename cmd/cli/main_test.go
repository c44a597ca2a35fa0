package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/datacheckgo/internal/cli"
)

func TestRun_Help(t *testing.T) {
	var out, logBuf bytes.Buffer

	err := run(&out, &logBuf, []string{"--help"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	var out, logBuf bytes.Buffer

	err := run(&out, &logBuf, []string{"-log-level", "loudest", "./resources"})
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestRun_CompleteProject(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.suite.yaml"), []byte(`
name: orders
expectations:
  - type: expect_table_row_count_to_be_between
    kwargs:
      min_value: 1
`), 0o644))

	var out, logBuf bytes.Buffer
	err := run(&out, &logBuf, []string{dir})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "added      expectation_suite.orders")
}

func TestRun_MissingDependenciesFail(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project.hcl"), []byte(`
validation_definition "orders_daily" {
  suite = expectation_suite.orders
  batch = batch_definition.daily
}
`), 0o644))

	var out, logBuf bytes.Buffer
	err := run(&out, &logBuf, []string{dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 resources are not added")
	assert.Contains(t, out.String(), "not added  validation_definition.orders_daily")
}
