package sitetypes

import (
	"github.com/latticeworks/sitekit/internal/algebra"
	"github.com/latticeworks/sitekit/internal/registry"
	"github.com/latticeworks/sitekit/internal/site"
)

// SpinHalf is the tag of the spin-1/2 site type. Basis: Up=1, Dn=2.
var SpinHalf = site.NewTag("S=1/2")

// RegisterSpinHalf installs the spin-1/2 handlers into reg.
func RegisterSpinHalf(reg *registry.Registry) error {
	if err := reg.RegisterSpace(SpinHalf, func(registry.Params) (int, error) {
		return 2, nil
	}); err != nil {
		return err
	}
	if err := reg.RegisterOp(SpinHalf, spinHalfOp); err != nil {
		return err
	}
	if err := reg.RegisterState(SpinHalf, "Up", statePosition(1)); err != nil {
		return err
	}
	return reg.RegisterState(SpinHalf, "Dn", statePosition(2))
}

func spinHalfOp(name site.OpName, _ site.Index) (site.Artifact, bool, error) {
	var rows [][]float64
	switch name.String() {
	case "Id":
		rows = [][]float64{
			{1, 0},
			{0, 1},
		}
	case "Sz":
		rows = [][]float64{
			{0.5, 0},
			{0, -0.5},
		}
	case "S+", "Sp":
		rows = [][]float64{
			{0, 1},
			{0, 0},
		}
	case "S-", "Sm":
		rows = [][]float64{
			{0, 0},
			{1, 0},
		}
	case "Sx":
		rows = [][]float64{
			{0, 0.5},
			{0.5, 0},
		}
	case "ProjUp":
		rows = [][]float64{
			{1, 0},
			{0, 0},
		}
	case "ProjDn":
		rows = [][]float64{
			{0, 0},
			{0, 1},
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
