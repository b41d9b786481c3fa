package sitedef

import (
	"fmt"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileSource compiles a whole CUE source into site definitions. Each
// entry under the top-level "site" struct becomes one SiteDef; the result
// is sorted by tag. filename is used for error positions only.
func CompileSource(filename string, data []byte) ([]SiteDef, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	sitesVal := v.LookupPath(cue.ParsePath("site"))
	if !sitesVal.Exists() {
		return nil, &CompileError{
			Field:   "site",
			Message: "no site definitions found",
			Pos:     v.Pos(),
		}
	}

	iter, err := sitesVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var defs []SiteDef
	for iter.Next() {
		def, err := Compile(iter.Value())
		if err != nil {
			return nil, err
		}
		defs = append(defs, *def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Tag < defs[j].Tag })
	return defs, nil
}

// Compile parses a CUE value into a SiteDef.
// Uses the CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the site struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`site: "S=3/2": { dimension: 4, ... }`)
//	def, err := sitedef.Compile(v.LookupPath(cue.ParsePath(`site."S=3/2"`)))
func Compile(v cue.Value) (*SiteDef, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	def := &SiteDef{}

	// The tag is the struct label (the last path selector).
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		def.Tag = labels[len(labels)-1].Unquoted()
	}

	dimVal := v.LookupPath(cue.ParsePath("dimension"))
	if !dimVal.Exists() {
		return nil, &CompileError{
			Field:   "dimension",
			Message: "dimension is required",
			Pos:     v.Pos(),
		}
	}
	dim, err := dimVal.Int64()
	if err != nil {
		return nil, formatCUEError(err)
	}
	def.Dimension = int(dim)

	def.States, err = parseStates(v)
	if err != nil {
		return nil, err
	}

	def.Operators, err = parseOperators(v)
	if err != nil {
		return nil, err
	}

	fermVal := v.LookupPath(cue.ParsePath("fermionic"))
	if fermVal.Exists() {
		iter, err := fermVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			name, err := iter.Value().String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			def.Fermionic = append(def.Fermionic, name)
		}
	}

	return def, nil
}

// parseStates extracts the basis-state name → position map.
func parseStates(v cue.Value) (map[string]int, error) {
	statesVal := v.LookupPath(cue.ParsePath("states"))
	if !statesVal.Exists() {
		return nil, nil // states are optional
	}

	iter, err := statesVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	states := make(map[string]int)
	for iter.Next() {
		pos, err := iter.Value().Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		states[iter.Selector().Unquoted()] = int(pos)
	}
	return states, nil
}

// parseOperators extracts operator name → matrix definitions.
func parseOperators(v cue.Value) (map[string][][]float64, error) {
	opsVal := v.LookupPath(cue.ParsePath("operators"))
	if !opsVal.Exists() {
		return nil, nil // operators are optional
	}

	iter, err := opsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	ops := make(map[string][][]float64)
	for iter.Next() {
		opName := iter.Selector().Unquoted()
		rows, err := parseMatrix(iter.Value(), opName)
		if err != nil {
			return nil, err
		}
		ops[opName] = rows
	}
	return ops, nil
}

// parseMatrix parses a list of lists of numbers.
func parseMatrix(v cue.Value, opName string) ([][]float64, error) {
	rowIter, err := v.List()
	if err != nil {
		return nil, &CompileError{
			Field:   fmt.Sprintf("operators.%s", opName),
			Message: "operator must be a list of rows",
			Pos:     v.Pos(),
		}
	}

	var rows [][]float64
	for rowIter.Next() {
		colIter, err := rowIter.Value().List()
		if err != nil {
			return nil, &CompileError{
				Field:   fmt.Sprintf("operators.%s", opName),
				Message: "operator row must be a list of numbers",
				Pos:     rowIter.Value().Pos(),
			}
		}
		var row []float64
		for colIter.Next() {
			f, err := colIter.Value().Float64()
			if err != nil {
				return nil, formatCUEError(err)
			}
			row = append(row, f)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
