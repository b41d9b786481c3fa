package sitedef_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticeworks/sitekit/internal/algebra"
	"github.com/latticeworks/sitekit/internal/registry"
	"github.com/latticeworks/sitekit/internal/resolve"
	"github.com/latticeworks/sitekit/internal/site"
	"github.com/latticeworks/sitekit/internal/sitedef"
)

func spinThreeHalves() *sitedef.SiteDef {
	return &sitedef.SiteDef{
		Tag:       "S=3/2",
		Dimension: 4,
		States:    map[string]int{"Up": 1, "Dn": 4},
		Operators: map[string][][]float64{
			"Sz": {
				{1.5, 0, 0, 0},
				{0, 0.5, 0, 0},
				{0, 0, -0.5, 0},
				{0, 0, 0, -1.5},
			},
			"Id": {
				{1, 0, 0, 0},
				{0, 1, 0, 0},
				{0, 0, 1, 0},
				{0, 0, 0, 1},
			},
		},
	}
}

func TestInstall_EndToEnd(t *testing.T) {
	reg := registry.New()
	require.NoError(t, sitedef.Install(spinThreeHalves(), reg))

	r := resolve.New(reg, algebra.Dense{})
	tag := site.NewTag("S=3/2")

	ind, err := r.SiteIndex(tag)
	require.NoError(t, err)
	assert.Equal(t, 4, ind.Dim())

	art, err := r.Op("Sz", ind)
	require.NoError(t, err)
	m := art.(*algebra.Matrix)
	assert.Equal(t, 1.5, m.At(0, 0))
	assert.Equal(t, -1.5, m.At(3, 3))

	// Composite expressions work over installed definitions too.
	art, err = r.Op("Sz*Sz", ind)
	require.NoError(t, err)
	assert.Equal(t, 2.25, art.(*algebra.Matrix).At(0, 0))

	val, err := r.State(ind, "Dn")
	require.NoError(t, err)
	assert.Equal(t, 4, val.Val)

	_, err = r.Op("Sx", ind)
	assert.True(t, resolve.IsNotFound(err), "only defined operators resolve")
}

func TestInstall_ResolvedArtifactsAreCopies(t *testing.T) {
	reg := registry.New()
	require.NoError(t, sitedef.Install(spinThreeHalves(), reg))

	r := resolve.New(reg, algebra.Dense{})
	ind, err := r.SiteIndex(site.NewTag("S=3/2"))
	require.NoError(t, err)

	a, err := r.Op("Sz", ind)
	require.NoError(t, err)
	a.(*algebra.Matrix).Set(0, 0, 99)

	b, err := r.Op("Sz", ind)
	require.NoError(t, err)
	assert.Equal(t, 1.5, b.(*algebra.Matrix).At(0, 0), "mutating one resolution must not leak into the next")
}

func TestInstall_FermionicHandlers(t *testing.T) {
	def := &sitedef.SiteDef{
		Tag:       "Hardcore",
		Dimension: 2,
		Operators: map[string][][]float64{
			"C":    {{0, 1}, {0, 0}},
			"Cdag": {{0, 0}, {1, 0}},
			"N":    {{0, 0}, {0, 1}},
		},
		Fermionic: []string{"C", "Cdag"},
	}

	reg := registry.New()
	require.NoError(t, sitedef.Install(def, reg))

	r := resolve.New(reg, algebra.Dense{})
	ind, err := r.SiteIndex(site.NewTag("Hardcore"))
	require.NoError(t, err)

	has, err := r.HasFermionString("C", ind)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = r.HasFermionString("N", ind)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestInstall_BadMatrixShape(t *testing.T) {
	def := &sitedef.SiteDef{
		Tag:       "Broken",
		Dimension: 3,
		Operators: map[string][][]float64{
			"Sz": {{1, 0}, {0, -1}},
		},
	}

	err := sitedef.Install(def, registry.New())
	require.Error(t, err, "shape problems surface at install, not at resolution")
	assert.Contains(t, err.Error(), "Broken")
	assert.Contains(t, err.Error(), "Sz")
}

func TestInstallAll_StopsAtFirstError(t *testing.T) {
	good := *spinThreeHalves()
	bad := sitedef.SiteDef{Tag: "S=3/2", Dimension: 4}

	reg := registry.New()
	err := sitedef.InstallAll([]sitedef.SiteDef{good, bad}, reg)
	require.Error(t, err, "second install collides with the first registration")
}
