// Package sitetypes ships the builtin site-type handler sets: spin-1/2,
// spin-1, and spinless fermions. Registration is explicit (no package
// init side effects) so applications control which registry is populated
// and when, preserving the populate-before-resolve constraint.
package sitetypes

import (
	"github.com/latticeworks/sitekit/internal/registry"
	"github.com/latticeworks/sitekit/internal/site"
)

// RegisterBuiltins installs every builtin site type into reg.
func RegisterBuiltins(reg *registry.Registry) error {
	if err := RegisterSpinHalf(reg); err != nil {
		return err
	}
	if err := RegisterSpinOne(reg); err != nil {
		return err
	}
	return RegisterFermion(reg)
}

// statePosition returns a state handler that resolves to a fixed
// 1-based position regardless of the index.
func statePosition(pos int) registry.StateFunc {
	return func(site.Index) (int, error) {
		return pos, nil
	}
}
