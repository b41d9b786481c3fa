package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_BuiltinScenarioPasses(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/builtin-spin-half.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Len(t, result.Checks, len(s.Checks))
}

func TestRun_CustomDefsScenarioPasses(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/custom-spin-three-halves.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_ConflictingStatesScenario(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/conflicting-states.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	require.Len(t, result.Checks, 2)
	assert.Equal(t, OutcomeAmbiguous, result.Checks[0].Outcome)
	assert.Equal(t, OutcomeOK, result.Checks[1].Outcome)
	assert.Equal(t, 2, result.Checks[1].Position)
}

func TestRun_ExpectationMismatchFails(t *testing.T) {
	s := &Scenario{
		Name:        "wrong-position",
		Description: "expects the wrong basis position",
		Builtins:    true,
		Checks: []Check{
			{
				Kind: CheckState,
				Tag:  "S=1/2",
				Name: "Dn",
				Expect: Expectation{
					Outcome:  OutcomeOK,
					Position: 1, // actually 2
				},
			},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "position 2, want 1")
}

func TestRun_OutcomeMismatchFails(t *testing.T) {
	s := &Scenario{
		Name:        "expected-missing",
		Description: "expects a registered operator to be missing",
		Builtins:    true,
		Checks: []Check{
			{
				Kind:   CheckOp,
				Tag:    "S=1/2",
				Expr:   "Sz",
				Expect: Expectation{Outcome: OutcomeNotFound},
			},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "outcome ok, want not_found")
}

func TestRun_MatrixMismatchFails(t *testing.T) {
	s := &Scenario{
		Name:        "wrong-matrix",
		Description: "expects the wrong Sz matrix",
		Builtins:    true,
		Checks: []Check{
			{
				Kind: CheckOp,
				Tag:  "S=1/2",
				Expr: "Sz",
				Expect: Expectation{
					Outcome: OutcomeOK,
					Matrix:  [][]float64{{1, 0}, {0, -1}},
				},
			},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
}

func TestRun_IrrationalEntriesCompareWithinEpsilon(t *testing.T) {
	s := &Scenario{
		Name:        "spin-one-raising",
		Description: "sqrt(2) entries compare within tolerance",
		Builtins:    true,
		Checks: []Check{
			{
				Kind: CheckOp,
				Tag:  "S=1",
				Expr: "S+",
				Expect: Expectation{
					Outcome: OutcomeOK,
					Matrix: [][]float64{
						{0, 1.4142135623730951, 0},
						{0, 0, 1.4142135623730951},
						{0, 0, 0},
					},
				},
			},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_UnknownTagRecordsNotFound(t *testing.T) {
	s := &Scenario{
		Name:        "unknown-tag",
		Description: "an unregistered tag records not_found without aborting",
		Builtins:    true,
		Checks: []Check{
			{
				Kind:   CheckIndex,
				Tag:    "NoSuchSite",
				Expect: Expectation{Outcome: OutcomeNotFound},
			},
			{
				Kind:   CheckState,
				Tag:    "S=1/2",
				Name:   "Up",
				Expect: Expectation{Outcome: OutcomeOK, Position: 1},
			},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, OutcomeNotFound, result.Checks[0].Outcome)
}

func TestRun_IndexSummaryShape(t *testing.T) {
	s := &Scenario{
		Name:        "index-shape",
		Description: "index checks record dimension and tag order",
		Builtins:    true,
		Checks: []Check{
			{
				Kind: CheckIndex,
				Tag:  "Fermion",
				Expect: Expectation{
					Outcome: OutcomeOK,
					Dims:    []int{2},
					Tags:    []string{"Site", "Fermion"},
				},
			},
			{
				Kind:  CheckIndices,
				Tag:   "S=1/2",
				Count: 3,
				Expect: Expectation{
					Outcome: OutcomeOK,
					Dims:    []int{2, 2, 2},
				},
			},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	indices := result.Checks[1].Indices
	require.Len(t, indices, 3)
	assert.Equal(t, []string{"Site", "S=1/2", "n=2"}, indices[1].Tags)
}
