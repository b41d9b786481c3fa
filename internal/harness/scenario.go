package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: a registry population
// (builtins and/or definition files) plus a list of resolution checks
// with expected outcomes.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Builtins controls whether the builtin site types are registered.
	Builtins bool `yaml:"builtins"`

	// Defs lists paths to site-definition files (.cue or .yaml) to
	// install. Paths are relative to the scenario file location.
	Defs []string `yaml:"defs,omitempty"`

	// Checks contains the resolutions to perform with expected results.
	Checks []Check `yaml:"checks"`
}

// Check is one resolution to perform against the populated registry.
type Check struct {
	// Kind selects the resolution: "op", "state", "fermion", "index",
	// or "indices".
	Kind string `yaml:"kind"`

	// Tag is the site-type tag the check targets.
	Tag string `yaml:"tag"`

	// Expr is the operator expression (kind "op"), possibly composite.
	Expr string `yaml:"expr,omitempty"`

	// Name is the state name (kind "state") or operator name
	// (kind "fermion").
	Name string `yaml:"name,omitempty"`

	// Count is the chain length (kind "indices").
	Count int `yaml:"count,omitempty"`

	// Expect specifies the expected outcome.
	Expect Expectation `yaml:"expect"`
}

// Expectation specifies the expected result of a check.
type Expectation struct {
	// Outcome is one of "ok", "not_found", "ambiguous", "malformed".
	Outcome string `yaml:"outcome"`

	// Matrix is the expected operator matrix (kind "op", outcome "ok").
	// If nil, only the outcome is validated.
	Matrix [][]float64 `yaml:"matrix,omitempty"`

	// Position is the expected 1-based basis position (kind "state").
	Position int `yaml:"position,omitempty"`

	// FermionString is the expected classification (kind "fermion").
	FermionString *bool `yaml:"fermion_string,omitempty"`

	// Dims are the expected index dimensions, one per site (kinds
	// "index" and "indices").
	Dims []int `yaml:"dims,omitempty"`

	// Tags are the expected tag labels of the index (kind "index").
	Tags []string `yaml:"tags,omitempty"`
}

// Check kind constants.
const (
	CheckOp      = "op"
	CheckState   = "state"
	CheckFermion = "fermion"
	CheckIndex   = "index"
	CheckIndices = "indices"
)

// Outcome constants.
const (
	OutcomeOK        = "ok"
	OutcomeNotFound  = "not_found"
	OutcomeAmbiguous = "ambiguous"
	OutcomeMalformed = "malformed"
	OutcomeError     = "error"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving definition paths relative to the provided base path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "check:" vs "checks:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i, defPath := range scenario.Defs {
		if !filepath.IsAbs(defPath) && basePath != "" {
			scenario.Defs[i] = filepath.Join(basePath, defPath)
		}
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if !s.Builtins && len(s.Defs) == 0 {
		return fmt.Errorf("scenario registers nothing: enable builtins or list defs")
	}

	if len(s.Checks) == 0 {
		return fmt.Errorf("checks list is required and must be non-empty")
	}

	for _, defPath := range s.Defs {
		if _, err := os.Stat(defPath); os.IsNotExist(err) {
			return fmt.Errorf("definition file not found: %s", defPath)
		}
	}

	for i, check := range s.Checks {
		if err := validateCheck(i, &check); err != nil {
			return err
		}
	}

	return nil
}

// validateCheck validates a single check based on its kind.
func validateCheck(index int, c *Check) error {
	if c.Kind == "" {
		return fmt.Errorf("checks[%d]: kind is required", index)
	}
	if c.Tag == "" {
		return fmt.Errorf("checks[%d]: tag is required", index)
	}

	switch c.Kind {
	case CheckOp:
		if c.Expr == "" {
			return fmt.Errorf("checks[%d]: expr is required for op", index)
		}
	case CheckState:
		if c.Name == "" {
			return fmt.Errorf("checks[%d]: name is required for state", index)
		}
	case CheckFermion:
		if c.Name == "" {
			return fmt.Errorf("checks[%d]: name is required for fermion", index)
		}
	case CheckIndex:
		// tag alone suffices
	case CheckIndices:
		if c.Count < 1 {
			return fmt.Errorf("checks[%d]: count must be positive for indices", index)
		}
	default:
		return fmt.Errorf("checks[%d]: unknown check kind %q", index, c.Kind)
	}

	switch c.Expect.Outcome {
	case OutcomeOK, OutcomeNotFound, OutcomeAmbiguous, OutcomeMalformed:
	case "":
		return fmt.Errorf("checks[%d]: expect.outcome is required", index)
	default:
		return fmt.Errorf("checks[%d]: unknown outcome %q", index, c.Expect.Outcome)
	}

	return nil
}
