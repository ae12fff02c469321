package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	// A nil slice would make cobra fall back to os.Args.
	rootCmd.SetArgs(append([]string{}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommandRunsServe(t *testing.T) {
	// An invalid environment stops serve at config load, before it listens.
	t.Setenv("ENV", "bogus")

	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: nil},
		{name: "port flag on root", args: []string{"--port", "8080"}},
		{name: "explicit serve", args: []string{"serve", "--port", "8080"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeRoot(t, tt.args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
			assert.NotContains(t, out, "Available Commands")
		})
	}
}

func TestRootCommandRejectsUnknownCommand(t *testing.T) {
	t.Setenv("ENV", "bogus")

	_, err := executeRoot(t, "bogus")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
