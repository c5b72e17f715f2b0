// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assaylabs/assay/pkg/types"
)

func newListCommand() *cobra.Command {
	c := &cobra.Command{}
	c.Flags().Int("limit", 0, "")
	c.Flags().Int("offset", 0, "")
	c.Flags().String("filter", "", "")
	c.Flags().String("visibility", "", "")
	return c
}

func TestListOptions_VisibilityAliasesFilter(t *testing.T) {
	cmd := newListCommand()
	require.NoError(t, cmd.Flags().Set("visibility", "private"))

	opts := listOptionsFromFlags(cmd)
	assert.Equal(t, "private", opts.Filter)
}

func TestListOptions_FilterWinsOverVisibility(t *testing.T) {
	cmd := newListCommand()
	require.NoError(t, cmd.Flags().Set("visibility", "private"))
	require.NoError(t, cmd.Flags().Set("filter", "shared"))

	opts := listOptionsFromFlags(cmd)
	assert.Equal(t, "shared", opts.Filter)
}

func TestListOptions_Pagination(t *testing.T) {
	cmd := newListCommand()
	require.NoError(t, cmd.Flags().Set("limit", "25"))
	require.NoError(t, cmd.Flags().Set("offset", "50"))

	opts := listOptionsFromFlags(cmd)
	assert.Equal(t, 25, opts.Limit)
	assert.Equal(t, 50, opts.Offset)
}

func TestOutputFormat_FlagWinsOverConfig(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("format", "", "")
	require.NoError(t, cmd.Flags().Set("format", "yaml"))

	format, err := outputFormat(cmd, types.Config{OutputFormat: types.FormatTable})
	require.NoError(t, err)
	assert.Equal(t, types.FormatYAML, format)
}

func TestOutputFormat_ConfigDefault(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("format", "", "")

	format, err := outputFormat(cmd, types.Config{OutputFormat: types.FormatTable})
	require.NoError(t, err)
	assert.Equal(t, types.FormatTable, format)
}

func TestOutputFormat_RejectsUnknown(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("format", "", "")
	require.NoError(t, cmd.Flags().Set("format", "xml"))

	_, err := outputFormat(cmd, types.Config{OutputFormat: types.FormatJSON})
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-10", truncate("exactly-10", 10))
	assert.Equal(t, "a very ...", truncate("a very long title here", 10))
}
