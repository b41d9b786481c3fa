package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDefs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

const goodCUE = `
site: "S=3/2": {
	dimension: 4
	states: { Up: 1, Dn: 4 }
	operators: {
		Sz: [
			[1.5, 0, 0, 0],
			[0, 0.5, 0, 0],
			[0, 0, -0.5, 0],
			[0, 0, 0, -1.5],
		]
	}
}
`

const goodYAML = `
sites:
  Hardcore:
    dimension: 2
    operators:
      C: [[0, 1], [0, 0]]
    fermionic: [C]
`

func TestValidateCommand_OK(t *testing.T) {
	dir := writeDefs(t, map[string]string{"spin.cue": goodCUE, "hardcore.yaml": goodYAML})

	out, err := runCLI(t, "validate", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "2 site definition(s)")
}

func TestValidateCommand_JSONOutput(t *testing.T) {
	dir := writeDefs(t, map[string]string{"spin.cue": goodCUE})

	out, err := runCLI(t, "validate", dir, "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestValidateCommand_SchemaErrors(t *testing.T) {
	bad := `
site: Bad: {
	dimension: 2
	states: { Up: 9 }
	operators: {
		Sz: [[0.5, 0], [0, -0.5]]
		Broken: [[1]]
	}
}
`
	dir := writeDefs(t, map[string]string{"bad.cue": bad})

	out, err := runCLI(t, "validate", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E103", "state position out of range")
	assert.Contains(t, out, "E106", "operator shape")
}

func TestValidateCommand_ParseErrorReported(t *testing.T) {
	dir := writeDefs(t, map[string]string{"broken.cue": `site: { X: { dimension:`})

	out, err := runCLI(t, "validate", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Validation failed")
}

func TestValidateCommand_MissingDirIsCommandError(t *testing.T) {
	out, err := runCLI(t, "validate", "/nonexistent/defs")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeNotFound)
}

func TestValidateCommand_EmptyDirIsCommandError(t *testing.T) {
	out, err := runCLI(t, "validate", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeNoFiles)
}
