package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"fix", "verify", "merge"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "webfix", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestFixCommand_Flags(t *testing.T) {
	limit := fixCmd.Flags().Lookup("limit")
	require.NotNil(t, limit, "fix command should have --limit flag")
	assert.Equal(t, "0", limit.DefValue)

	require.NotNil(t, fixCmd.Flags().Lookup("csv"))
	require.NotNil(t, fixCmd.Flags().Lookup("json"))
	require.NotNil(t, fixCmd.Flags().Lookup("report"))
	require.NotNil(t, fixCmd.Flags().Lookup("no-cache"))
}

func TestVerifyCommand_Flags(t *testing.T) {
	require.NotNil(t, verifyCmd.Flags().Lookup("json"))
	require.NotNil(t, verifyCmd.Flags().Lookup("timeout"))
	require.NotNil(t, verifyCmd.Flags().Lookup("report"))
}

func TestMergeCommand_Flags(t *testing.T) {
	require.NotNil(t, mergeCmd.Flags().Lookup("csv"))
	require.NotNil(t, mergeCmd.Flags().Lookup("json"))
}
