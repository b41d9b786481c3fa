package sitetypes

import (
	"math"

	"github.com/latticeworks/sitekit/internal/algebra"
	"github.com/latticeworks/sitekit/internal/registry"
	"github.com/latticeworks/sitekit/internal/site"
)

// SpinOne is the tag of the spin-1 site type. Basis: Up=1, Z0=2, Dn=3.
var SpinOne = site.NewTag("S=1")

// RegisterSpinOne installs the spin-1 handlers into reg.
func RegisterSpinOne(reg *registry.Registry) error {
	if err := reg.RegisterSpace(SpinOne, func(registry.Params) (int, error) {
		return 3, nil
	}); err != nil {
		return err
	}
	if err := reg.RegisterOp(SpinOne, spinOneOp); err != nil {
		return err
	}
	for name, pos := range map[string]int{"Up": 1, "Z0": 2, "Dn": 3} {
		if err := reg.RegisterState(SpinOne, name, statePosition(pos)); err != nil {
			return err
		}
	}
	return nil
}

func spinOneOp(name site.OpName, _ site.Index) (site.Artifact, bool, error) {
	s := math.Sqrt2

	var rows [][]float64
	switch name.String() {
	case "Id":
		rows = [][]float64{
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		}
	case "Sz":
		rows = [][]float64{
			{1, 0, 0},
			{0, 0, 0},
			{0, 0, -1},
		}
	case "S+", "Sp":
		rows = [][]float64{
			{0, s, 0},
			{0, 0, s},
			{0, 0, 0},
		}
	case "S-", "Sm":
		rows = [][]float64{
			{0, 0, 0},
			{s, 0, 0},
			{0, s, 0},
		}
	case "Sz2":
		rows = [][]float64{
			{1, 0, 0},
			{0, 0, 0},
			{0, 0, 1},
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
