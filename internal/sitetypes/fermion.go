package sitetypes

import (
	"github.com/latticeworks/sitekit/internal/algebra"
	"github.com/latticeworks/sitekit/internal/registry"
	"github.com/latticeworks/sitekit/internal/site"
)

// Fermion is the tag of the spinless fermion site type. Basis: Emp=1, Occ=2.
var Fermion = site.NewTag("Fermion")

// fermionStringOps are the operator names that carry a Jordan-Wigner
// string on a fermion site.
var fermionStringOps = []string{"C", "Cdag", "A", "Adag"}

// RegisterFermion installs the spinless-fermion handlers into reg.
func RegisterFermion(reg *registry.Registry) error {
	if err := reg.RegisterSpace(Fermion, func(registry.Params) (int, error) {
		return 2, nil
	}); err != nil {
		return err
	}
	if err := reg.RegisterOp(Fermion, fermionOp); err != nil {
		return err
	}
	if err := reg.RegisterState(Fermion, "Emp", statePosition(1)); err != nil {
		return err
	}
	if err := reg.RegisterState(Fermion, "Occ", statePosition(2)); err != nil {
		return err
	}
	for _, name := range fermionStringOps {
		err := reg.RegisterFermion(Fermion, site.NewOpName(name), func(site.Index, site.OpName) (bool, error) {
			return true, nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func fermionOp(name site.OpName, _ site.Index) (site.Artifact, bool, error) {
	var rows [][]float64
	switch name.String() {
	case "Id":
		rows = [][]float64{
			{1, 0},
			{0, 1},
		}
	case "N", "n":
		rows = [][]float64{
			{0, 0},
			{0, 1},
		}
	case "C", "A":
		rows = [][]float64{
			{0, 1},
			{0, 0},
		}
	case "Cdag", "Adag":
		rows = [][]float64{
			{0, 0},
			{1, 0},
		}
	case "F":
		rows = [][]float64{
			{1, 0},
			{0, -1},
		}
	default:
		return nil, false, nil
	}

	m, err := algebra.FromRows(rows)
	if err != nil {
		return nil, false, err
	}
	return m, true, nil
}
