package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticeworks/sitekit/internal/site"
)

type nopArtifact struct{}

func (nopArtifact) IsEmpty() bool { return false }

func nopOp(site.OpName, site.Index) (site.Artifact, bool, error) {
	return nopArtifact{}, true, nil
}

func TestRegistry_RegisterAndLookupOp(t *testing.T) {
	reg := New()
	tag := site.NewTag("S=1/2")

	require.NoError(t, reg.RegisterOp(tag, nopOp))

	fn, ok := reg.OpFor(tag)
	require.True(t, ok)
	art, matched, err := fn(site.NewOpName("Sz"), site.NewIndex(2, tag))
	require.NoError(t, err)
	assert.True(t, matched)
	assert.False(t, art.IsEmpty())

	_, ok = reg.OpFor(site.NewTag("S=1"))
	assert.False(t, ok)
}

func TestRegistry_AppendOnly(t *testing.T) {
	reg := New()
	tag := site.NewTag("S=1/2")

	require.NoError(t, reg.RegisterOp(tag, nopOp))
	err := reg.RegisterOp(tag, nopOp)
	require.Error(t, err, "bindings are never overwritten")
	assert.Contains(t, err.Error(), "already registered")

	require.NoError(t, reg.RegisterState(tag, "Up", func(site.Index) (int, error) { return 1, nil }))
	assert.Error(t, reg.RegisterState(tag, "Up", func(site.Index) (int, error) { return 2, nil }))
	// Same name under a different tag is a different key.
	assert.NoError(t, reg.RegisterState(site.NewTag("S=1"), "Up", func(site.Index) (int, error) { return 1, nil }))
}

func TestRegistry_NilHandlersRejected(t *testing.T) {
	reg := New()
	tag := site.NewTag("T")

	assert.Error(t, reg.RegisterOp(tag, nil))
	assert.Error(t, reg.RegisterOpPopulate(tag, nil))
	assert.Error(t, reg.RegisterLegacyOp(tag, nil))
	assert.Error(t, reg.RegisterState(tag, "Up", nil))
	assert.Error(t, reg.RegisterState(tag, "", func(site.Index) (int, error) { return 1, nil }))
	assert.Error(t, reg.RegisterFermion(tag, site.NewOpName("C"), nil))
	assert.Error(t, reg.RegisterSpace(tag, nil))
	assert.Error(t, reg.RegisterBulk(tag, nil))
}

func TestRegistry_StateExistenceSeparateFromInvocation(t *testing.T) {
	reg := New()
	tag := site.NewTag("S=1/2")

	invoked := false
	require.NoError(t, reg.RegisterState(tag, "Up", func(site.Index) (int, error) {
		invoked = true
		return 1, nil
	}))

	_, ok := reg.StateFor(tag, "Up")
	assert.True(t, ok)
	assert.False(t, invoked, "existence query must not invoke the handler")

	_, ok = reg.StateFor(tag, "Dn")
	assert.False(t, ok)
}

func TestRegistry_SpaceTagsSorted(t *testing.T) {
	reg := New()
	space := func(Params) (int, error) { return 2, nil }

	require.NoError(t, reg.RegisterSpace(site.NewTag("S=1"), space))
	require.NoError(t, reg.RegisterSpace(site.NewTag("Fermion"), space))
	require.NoError(t, reg.RegisterSpace(site.NewTag("S=1/2"), space))

	assert.Equal(t,
		site.Tags("Fermion", "S=1", "S=1/2"),
		reg.SpaceTags())
}

func TestRegistry_StateNamesSorted(t *testing.T) {
	reg := New()
	tag := site.NewTag("S=1")
	pos := func(site.Index) (int, error) { return 1, nil }

	require.NoError(t, reg.RegisterState(tag, "Z0", pos))
	require.NoError(t, reg.RegisterState(tag, "Dn", pos))
	require.NoError(t, reg.RegisterState(tag, "Up", pos))
	require.NoError(t, reg.RegisterState(site.NewTag("Other"), "X", pos))

	assert.Equal(t, []string{"Dn", "Up", "Z0"}, reg.StateNames(tag))
	assert.Empty(t, reg.StateNames(site.NewTag("Unknown")))
}
