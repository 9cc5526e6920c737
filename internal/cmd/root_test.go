package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv points every configuration source at a fresh temp home and
// returns it.
func isolateEnv(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PKGINIT_CONFIG", "")
	t.Setenv("PKGINIT_AUTHOR", "")
	t.Setenv("PKGINIT_SYNTAX", "")
	t.Setenv("GITHUB_USER", "")
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	xdg.Reload()
	return home
}

// executeRoot runs the root command with args and returns stdout and stderr.
func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	assert.Equal(t, "pkginit", root.Use)
	assert.True(t, root.SilenceUsage)
	assert.True(t, root.SilenceErrors)

	for _, name := range []string{"config", "verbose", "timestamps"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), "missing flag %s", name)
	}

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"init", "templates", "config", "version"})
}

func TestRoot_UnreadableConfigDoesNotFail(t *testing.T) {
	home := isolateEnv(t)

	// A directory in place of the config file cannot be read.
	cfgPath := filepath.Join(home, "config-dir")
	require.NoError(t, os.MkdirAll(cfgPath, 0o755))

	stdout, _, err := executeRoot(t, "--config", cfgPath, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "pkginit version")
}
