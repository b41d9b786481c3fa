// Package harness provides a conformance harness for the resolution
// engine: YAML scenarios populate a fresh registry, perform resolutions,
// and compare outcomes (matrices, basis positions, fermion-string
// classifications, index shapes) against expectations, with golden-file
// snapshots of the full run.
package harness

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/latticeworks/sitekit/internal/algebra"
	"github.com/latticeworks/sitekit/internal/registry"
	"github.com/latticeworks/sitekit/internal/resolve"
	"github.com/latticeworks/sitekit/internal/site"
	"github.com/latticeworks/sitekit/internal/sitedef"
	"github.com/latticeworks/sitekit/internal/sitetypes"
)

// matrixEpsilon bounds the per-entry difference tolerated when comparing
// matrices; resolved entries like sqrt(2) are irrational.
const matrixEpsilon = 1e-9

// Harness executes one scenario against a fresh registry.
type Harness struct {
	resolver *resolve.Resolver
	logger   *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh registry for isolation:
// 1. Register builtins if the scenario asks for them
// 2. Install every listed definition file
// 3. Perform each check and compare against its expectation
func Run(scenario *Scenario) (*Result, error) {
	reg := registry.New()

	if scenario.Builtins {
		if err := sitetypes.RegisterBuiltins(reg); err != nil {
			return nil, fmt.Errorf("failed to register builtins: %w", err)
		}
	}

	for _, path := range scenario.Defs {
		defs, err := loadDefs(path)
		if err != nil {
			return nil, err
		}
		if err := sitedef.InstallAll(defs, reg); err != nil {
			return nil, fmt.Errorf("failed to install %s: %w", path, err)
		}
	}

	h := &Harness{
		resolver: resolve.New(reg, algebra.Dense{}),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	result := NewResult()
	for i, check := range scenario.Checks {
		cr, err := h.runCheck(&check)
		if err != nil {
			return nil, fmt.Errorf("checks[%d]: %w", i, err)
		}
		result.Checks = append(result.Checks, *cr)
		for _, msg := range compareExpectation(i, &check, cr) {
			result.AddError(msg)
		}
		h.logger.Info("check completed",
			"index", i,
			"kind", check.Kind,
			"tag", check.Tag,
			"outcome", cr.Outcome,
		)
	}

	return result, nil
}

// loadDefs parses one definition file by extension.
func loadDefs(path string) ([]sitedef.SiteDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file: %w", err)
	}
	if filepath.Ext(path) == ".cue" {
		return sitedef.CompileSource(path, data)
	}
	defs, err := sitedef.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// runCheck performs one resolution and records what happened. A domain
// failure (not found, ambiguous, malformed) is a recorded outcome, not
// an execution error.
func (h *Harness) runCheck(c *Check) (*CheckResult, error) {
	cr := &CheckResult{Kind: c.Kind, Tag: c.Tag}
	tag := site.NewTag(c.Tag)

	switch c.Kind {
	case CheckOp:
		cr.Subject = c.Expr
		ind, err := h.resolver.SiteIndex(tag)
		if err != nil {
			cr.Outcome = classify(err)
			return cr, nil
		}
		art, err := h.resolver.Op(c.Expr, ind)
		if err != nil {
			cr.Outcome = classify(err)
			return cr, nil
		}
		m, ok := art.(*algebra.Matrix)
		if !ok {
			return nil, fmt.Errorf("operator resolved to %T, want a matrix", art)
		}
		cr.Outcome = OutcomeOK
		cr.Matrix = m.Rows()

	case CheckState:
		cr.Subject = c.Name
		ind, err := h.resolver.SiteIndex(tag)
		if err != nil {
			cr.Outcome = classify(err)
			return cr, nil
		}
		val, err := h.resolver.State(ind, c.Name)
		if err != nil {
			cr.Outcome = classify(err)
			return cr, nil
		}
		cr.Outcome = OutcomeOK
		cr.Position = val.Val

	case CheckFermion:
		cr.Subject = c.Name
		ind, err := h.resolver.SiteIndex(tag)
		if err != nil {
			cr.Outcome = classify(err)
			return cr, nil
		}
		has, err := h.resolver.HasFermionString(c.Name, ind)
		if err != nil {
			cr.Outcome = classify(err)
			return cr, nil
		}
		cr.Outcome = OutcomeOK
		cr.FermionString = &has

	case CheckIndex:
		ind, err := h.resolver.SiteIndex(tag)
		if err != nil {
			cr.Outcome = classify(err)
			return cr, nil
		}
		cr.Outcome = OutcomeOK
		cr.Indices = []IndexSummary{summarize(ind)}

	case CheckIndices:
		inds, err := h.resolver.SiteIndices(tag, c.Count)
		if err != nil {
			cr.Outcome = classify(err)
			return cr, nil
		}
		cr.Outcome = OutcomeOK
		cr.Indices = make([]IndexSummary, len(inds))
		for i, ind := range inds {
			cr.Indices[i] = summarize(ind)
		}

	default:
		return nil, fmt.Errorf("unknown check kind %q", c.Kind)
	}

	return cr, nil
}

func summarize(ind site.Index) IndexSummary {
	return IndexSummary{
		Dim:  ind.Dim(),
		Tags: site.TagStrings(ind.Tags()),
	}
}

// classify maps a resolution error to an outcome string.
func classify(err error) string {
	switch {
	case resolve.IsAmbiguous(err):
		return OutcomeAmbiguous
	case resolve.IsMalformed(err):
		return OutcomeMalformed
	case resolve.IsNotFound(err):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}

// compareExpectation reports every mismatch between a check's
// expectation and its recorded result.
func compareExpectation(index int, c *Check, cr *CheckResult) []string {
	var msgs []string
	fail := func(format string, args ...any) {
		msgs = append(msgs, fmt.Sprintf("checks[%d] (%s %s): ", index, c.Kind, c.Tag)+fmt.Sprintf(format, args...))
	}

	if cr.Outcome != c.Expect.Outcome {
		fail("outcome %s, want %s", cr.Outcome, c.Expect.Outcome)
		return msgs
	}
	if cr.Outcome != OutcomeOK {
		return msgs
	}

	if c.Expect.Matrix != nil && !matricesClose(cr.Matrix, c.Expect.Matrix) {
		fail("matrix %v, want %v", cr.Matrix, c.Expect.Matrix)
	}
	if c.Expect.Position != 0 && cr.Position != c.Expect.Position {
		fail("position %d, want %d", cr.Position, c.Expect.Position)
	}
	if c.Expect.FermionString != nil {
		if cr.FermionString == nil || *cr.FermionString != *c.Expect.FermionString {
			fail("fermion_string %v, want %v", deref(cr.FermionString), *c.Expect.FermionString)
		}
	}
	if len(c.Expect.Dims) > 0 {
		if len(cr.Indices) != len(c.Expect.Dims) {
			fail("%d indices, want %d", len(cr.Indices), len(c.Expect.Dims))
		} else {
			for i, want := range c.Expect.Dims {
				if cr.Indices[i].Dim != want {
					fail("index %d has dim %d, want %d", i+1, cr.Indices[i].Dim, want)
				}
			}
		}
	}
	if len(c.Expect.Tags) > 0 {
		if len(cr.Indices) != 1 {
			fail("tags expectation needs exactly one index, got %d", len(cr.Indices))
		} else if !stringSlicesEqual(cr.Indices[0].Tags, c.Expect.Tags) {
			fail("tags %v, want %v", cr.Indices[0].Tags, c.Expect.Tags)
		}
	}

	return msgs
}

func matricesClose(got, want [][]float64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if len(got[i]) != len(want[i]) {
			return false
		}
		for j := range got[i] {
			if math.Abs(got[i][j]-want[i][j]) > matrixEpsilon {
				return false
			}
		}
	}
	return true
}

func stringSlicesEqual(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func deref(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}
