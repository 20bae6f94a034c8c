package cmd

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_RegistersSubcommands(t *testing.T) {
	rootCmd, err := NewRootCmd(hclog.NewNullLogger())
	require.NoError(t, err)

	expected := []string{"init", "validate", "gate", "diff", "list", "check"}
	for _, name := range expected {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "expected subcommand %q to be registered", name)
	}
}

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{name: "valid level", value: "debug", expected: "debug"},
		{name: "uppercase level", value: "ERROR", expected: "error"},
		{name: "unknown level falls back to info", value: "verbose", expected: "info"},
		{name: "empty falls back to info", value: "", expected: "info"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("MBREGISTRY_LOG_LEVEL", tc.value)

			assert.Equal(t, tc.expected, getLogLevel())
		})
	}
}
