package layouts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerSetActive(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Upsert(Layout{ID: "default", RoutePath: "/trading"}))
	require.NoError(t, r.Upsert(Layout{ID: "depth", RoutePath: "/market-data"}))
	tr := NewTracker(r)

	_, ok := tr.GetActive("/trading")
	assert.False(t, ok)

	require.NoError(t, tr.SetActive("/trading", "default"))
	id, ok := tr.GetActive("/trading")
	assert.True(t, ok)
	assert.Equal(t, "default", id)

	err := tr.SetActive("/trading", "depth")
	assert.ErrorIs(t, err, ErrCrossRouteSelection)

	err = tr.SetActive("/trading", "missing")
	assert.ErrorIs(t, err, ErrLayoutNotFound)

	id, _ = tr.GetActive("/trading")
	assert.Equal(t, "default", id, "failed selection must not change the slot")
}

func TestTrackerClearIfMatches(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Upsert(Layout{ID: "a", RoutePath: "/trading"}))
	require.NoError(t, r.Upsert(Layout{ID: "b", RoutePath: "/trading"}))
	tr := NewTracker(r)
	require.NoError(t, tr.SetActive("/trading", "b"))

	assert.False(t, tr.ClearIfMatches("/trading", "a"))
	id, ok := tr.GetActive("/trading")
	assert.True(t, ok)
	assert.Equal(t, "b", id)

	assert.True(t, tr.ClearIfMatches("/trading", "b"))
	_, ok = tr.GetActive("/trading")
	assert.False(t, ok)

	assert.False(t, tr.ClearIfMatches("/trading", "b"))
	assert.Empty(t, tr.Routes())
}
