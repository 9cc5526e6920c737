package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkginit/cli/internal/templates"
)

func TestTemplates_Text(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := executeRoot(t, "templates")
	require.NoError(t, err)

	for _, name := range templates.Names() {
		assert.Contains(t, stdout, name)
	}
	assert.Contains(t, stdout, "(default)")
}

func TestTemplates_IncludesUserTemplates(t *testing.T) {
	home := isolateEnv(t)
	dir := filepath.Join(home, ".local", "share", "pkginit", "templates")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "react-package"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	stdout, _, err := executeRoot(t, "templates", "-o", "json")
	require.NoError(t, err)

	var rows []templateRow
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	require.Len(t, rows, len(templates.Names())+1)

	last := rows[len(rows)-1]
	assert.Equal(t, "react-package", last.Name)
	assert.Equal(t, "user", last.Source)
	assert.Equal(t, "builtin", rows[0].Source)
}
