package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticeworks/sitekit/internal/site"
)

func statePos(pos int) func(site.Index) (int, error) {
	return func(site.Index) (int, error) { return pos, nil }
}

func TestState_SingleMatch(t *testing.T) {
	r := newTestResolver(t)
	tag := site.NewTag("S=1/2")
	require.NoError(t, r.Registry().RegisterState(tag, "Up", statePos(1)))
	require.NoError(t, r.Registry().RegisterState(tag, "Dn", statePos(2)))

	ind := site.NewIndex(2, site.NewTag("Site"), tag)

	val, err := r.State(ind, "Dn")
	require.NoError(t, err)
	assert.Equal(t, 2, val.Val)
	assert.True(t, val.Index.Same(ind))
}

func TestState_TrimsName(t *testing.T) {
	r := newTestResolver(t)
	tag := site.NewTag("S=1/2")
	require.NoError(t, r.Registry().RegisterState(tag, "Up", statePos(1)))

	ind := site.NewIndex(2, tag)

	val, err := r.State(ind, " Up ")
	require.NoError(t, err)
	assert.Equal(t, 1, val.Val)
}

func TestState_NotFound(t *testing.T) {
	r := newTestResolver(t)
	tag := site.NewTag("S=1/2")
	require.NoError(t, r.Registry().RegisterState(tag, "Up", statePos(1)))

	ind := site.NewIndex(2, tag)

	_, err := r.State(ind, "Sideways")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var re *ResolutionError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "Sideways", re.Name)
	assert.Equal(t, []site.Tag{tag}, re.Tags)
}

func TestState_AmbiguousAcrossTags(t *testing.T) {
	r := newTestResolver(t)
	a := site.NewTag("A")
	b := site.NewTag("B")
	require.NoError(t, r.Registry().RegisterState(a, "Up", statePos(1)))
	require.NoError(t, r.Registry().RegisterState(b, "Up", statePos(2)))

	ind := site.NewIndex(2, a, b)

	_, err := r.State(ind, "Up")
	require.Error(t, err)
	require.True(t, IsAmbiguous(err))

	var re *ResolutionError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, []site.Tag{a, b}, re.Tags, "all conflicting tags must be named")

	// With only one registration the same lookup succeeds.
	r2 := newTestResolver(t)
	require.NoError(t, r2.Registry().RegisterState(a, "Up", statePos(1)))
	val, err := r2.State(site.NewIndex(2, a, b), "Up")
	require.NoError(t, err)
	assert.Equal(t, 1, val.Val)
}

func TestState_PositionOutOfRange(t *testing.T) {
	r := newTestResolver(t)
	tag := site.NewTag("T")
	require.NoError(t, r.Registry().RegisterState(tag, "Bad", statePos(7)))

	ind := site.NewIndex(2, tag)

	_, err := r.State(ind, "Bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestStateAt_Passthrough(t *testing.T) {
	r := newTestResolver(t)
	ind := site.NewIndex(3, site.NewTag("S=1"))

	val, err := r.StateAt(ind, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, val.Val)

	_, err = r.StateAt(ind, 4)
	assert.Error(t, err)
}

func TestStateAtSite_Passthrough(t *testing.T) {
	r := newTestResolver(t)
	inds := []site.Index{
		site.NewIndex(2, site.NewTag("S=1/2")),
		site.NewIndex(3, site.NewTag("S=1")),
	}

	val, err := r.StateAtSite(inds, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, val.Val)
	assert.True(t, val.Index.Same(inds[1]))

	_, err = r.StateAtSite(inds, 0, 1)
	assert.Error(t, err)
	_, err = r.StateAtSite(inds, 3, 1)
	assert.Error(t, err)
}
