package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/builtin-spin-half.yaml")
	require.NoError(t, err)

	assert.Equal(t, "builtin-spin-half", s.Name)
	assert.True(t, s.Builtins)
	require.NotEmpty(t, s.Checks)
	assert.Equal(t, CheckOp, s.Checks[0].Kind)
	assert.Equal(t, "Sz", s.Checks[0].Expr)
	assert.Equal(t, OutcomeOK, s.Checks[0].Expect.Outcome)
}

func TestLoadScenario_ResolvesDefPaths(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/custom-spin-three-halves.yaml")
	require.NoError(t, err)

	require.Len(t, s.Defs, 1)
	assert.Equal(t, filepath.Join("testdata", "defs", "spin32.cue"), s.Defs[0])
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/does-not-exist.yaml")
	require.Error(t, err)
}

func TestLoadScenario_UnknownFieldRejected(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: a typo in the checks key
builtins: true
cheks:
  - kind: op
`)
	_, err := LoadScenario(path)
	require.Error(t, err, "strict decoding must catch misspelled fields")
}

func TestLoadScenario_NothingRegistered(t *testing.T) {
	path := writeScenario(t, `
name: empty
description: neither builtins nor defs
builtins: false
checks:
  - kind: op
    tag: "S=1/2"
    expr: Sz
    expect:
      outcome: ok
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registers nothing")
}

func TestLoadScenario_MissingDefFile(t *testing.T) {
	path := writeScenario(t, `
name: missing-def
description: refers to a definition file that does not exist
builtins: false
defs:
  - nope.cue
checks:
  - kind: op
    tag: X
    expr: Sz
    expect:
      outcome: ok
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateCheck(t *testing.T) {
	tests := []struct {
		name    string
		check   Check
		wantErr string
	}{
		{
			name:    "missing kind",
			check:   Check{Tag: "S=1/2", Expect: Expectation{Outcome: OutcomeOK}},
			wantErr: "kind is required",
		},
		{
			name:    "missing tag",
			check:   Check{Kind: CheckOp, Expr: "Sz", Expect: Expectation{Outcome: OutcomeOK}},
			wantErr: "tag is required",
		},
		{
			name:    "op without expr",
			check:   Check{Kind: CheckOp, Tag: "S=1/2", Expect: Expectation{Outcome: OutcomeOK}},
			wantErr: "expr is required",
		},
		{
			name:    "state without name",
			check:   Check{Kind: CheckState, Tag: "S=1/2", Expect: Expectation{Outcome: OutcomeOK}},
			wantErr: "name is required",
		},
		{
			name:    "indices without count",
			check:   Check{Kind: CheckIndices, Tag: "S=1/2", Expect: Expectation{Outcome: OutcomeOK}},
			wantErr: "count must be positive",
		},
		{
			name:    "unknown kind",
			check:   Check{Kind: "teleport", Tag: "S=1/2", Expect: Expectation{Outcome: OutcomeOK}},
			wantErr: "unknown check kind",
		},
		{
			name:    "missing outcome",
			check:   Check{Kind: CheckIndex, Tag: "S=1/2"},
			wantErr: "outcome is required",
		},
		{
			name:    "unknown outcome",
			check:   Check{Kind: CheckIndex, Tag: "S=1/2", Expect: Expectation{Outcome: "maybe"}},
			wantErr: "unknown outcome",
		},
		{
			name:  "valid index check",
			check: Check{Kind: CheckIndex, Tag: "S=1/2", Expect: Expectation{Outcome: OutcomeOK}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCheck(0, &tt.check)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
