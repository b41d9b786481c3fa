// Package sitedef compiles declarative site-type definitions (CUE or
// YAML) into handler registrations. A definition names a tag and gives
// its dimension, named basis states, operator matrices, and the operator
// names that carry fermion strings.
package sitedef

import (
	"fmt"
	"sort"

	"github.com/latticeworks/sitekit/internal/algebra"
	"github.com/latticeworks/sitekit/internal/registry"
	"github.com/latticeworks/sitekit/internal/site"
)

// SiteDef is a compiled site-type definition, not yet registered.
type SiteDef struct {
	// Tag is the site-type label, e.g. "S=3/2".
	Tag string

	// Dimension is the local space dimension.
	Dimension int

	// States maps basis-state names to 1-based positions.
	States map[string]int

	// Operators maps operator names to dim×dim row-major matrices.
	Operators map[string][][]float64

	// Fermionic lists operator names that carry a fermion string.
	Fermionic []string
}

// OperatorNames returns the defined operator names, sorted.
func (d *SiteDef) OperatorNames() []string {
	names := make([]string, 0, len(d.Operators))
	for name := range d.Operators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Install registers the definition's handlers into reg: a space provider
// returning Dimension, one pure operator handler serving all defined
// matrices, a state handler per named state, and a fermion handler per
// fermionic operator name.
//
// Matrices are built once here; a shape problem surfaces as an install
// error rather than at resolution time.
func Install(def *SiteDef, reg *registry.Registry) error {
	tag := site.NewTag(def.Tag)

	ops := make(map[string]*algebra.Matrix, len(def.Operators))
	for name, rows := range def.Operators {
		m, err := algebra.FromRows(rows)
		if err != nil {
			return fmt.Errorf("sitedef: site %q operator %q: %w", def.Tag, name, err)
		}
		if m.Dim() != def.Dimension {
			return fmt.Errorf("sitedef: site %q operator %q is %d×%d, want %d×%d",
				def.Tag, name, m.Dim(), m.Dim(), def.Dimension, def.Dimension)
		}
		ops[name] = m
	}

	dim := def.Dimension
	if err := reg.RegisterSpace(tag, func(registry.Params) (int, error) {
		return dim, nil
	}); err != nil {
		return err
	}

	if len(ops) > 0 {
		err := reg.RegisterOp(tag, func(name site.OpName, _ site.Index) (site.Artifact, bool, error) {
			m, ok := ops[name.String()]
			if !ok {
				return nil, false, nil
			}
			// Callers own resolved artifacts; hand out a copy.
			return m.Clone(), true, nil
		})
		if err != nil {
			return err
		}
	}

	for name, pos := range def.States {
		p := pos
		err := reg.RegisterState(tag, name, func(site.Index) (int, error) {
			return p, nil
		})
		if err != nil {
			return err
		}
	}

	for _, name := range def.Fermionic {
		err := reg.RegisterFermion(tag, site.NewOpName(name), func(site.Index, site.OpName) (bool, error) {
			return true, nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// InstallAll installs defs in order, stopping at the first error.
func InstallAll(defs []SiteDef, reg *registry.Registry) error {
	for i := range defs {
		if err := Install(&defs[i], reg); err != nil {
			return err
		}
	}
	return nil
}
