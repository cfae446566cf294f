package layouts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryListByRouteKeepsInsertionOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Upsert(Layout{ID: "b", RoutePath: "/trading"}))
	require.NoError(t, r.Upsert(Layout{ID: "x", RoutePath: "/market-data"}))
	require.NoError(t, r.Upsert(Layout{ID: "a", RoutePath: "/trading"}))

	ids := func(ls []Layout) []string {
		out := make([]string, 0, len(ls))
		for _, l := range ls {
			out = append(out, l.ID)
		}
		return out
	}

	assert.Equal(t, []string{"b", "a"}, ids(r.ListByRoute("/trading")))
	assert.Equal(t, []string{"x"}, ids(r.ListByRoute("/market-data")))
	assert.Empty(t, r.ListByRoute("/trading/"))
}

func TestRegistryUpsertReplacesArrangementOnly(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Upsert(Layout{ID: "default", RoutePath: "/trading", CanDelete: false}))
	require.NoError(t, r.Upsert(Layout{ID: "other", RoutePath: "/trading"}))

	next := Arrangement{{ID: "chart", W: 12, H: 6}}
	require.NoError(t, r.Upsert(Layout{ID: "default", RoutePath: "/trading", Arrangement: next, CanDelete: true}))

	got, ok := r.Get("default")
	require.True(t, ok)
	assert.True(t, got.Arrangement.Equal(next))
	assert.False(t, got.CanDelete)
	assert.Equal(t, 2, r.Len())

	ls := r.ListByRoute("/trading")
	require.Len(t, ls, 2)
	assert.Equal(t, "default", ls[0].ID, "replacing must not move the layout")
}

func TestRegistryUpsertRejectsRouteChange(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Upsert(Layout{ID: "default", RoutePath: "/trading"}))

	err := r.Upsert(Layout{ID: "default", RoutePath: "/market-data"})
	assert.ErrorIs(t, err, ErrImmutableFieldViolation)

	got, _ := r.Get("default")
	assert.Equal(t, "/trading", got.RoutePath)
}

func TestRegistryGetReturnsCopy(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Upsert(Layout{ID: "l", RoutePath: "/trading", Arrangement: Arrangement{{ID: "chart", W: 4}}}))

	got, _ := r.Get("l")
	got.Arrangement[0].W = 99

	again, _ := r.Get("l")
	assert.Equal(t, 4, again.Arrangement[0].W)
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Upsert(Layout{ID: "default", RoutePath: "/trading"}))
	require.NoError(t, r.Upsert(Layout{ID: "mine", RoutePath: "/trading", CanDelete: true}))

	_, err := r.Remove("default")
	assert.ErrorIs(t, err, ErrNotDeletable)
	assert.Equal(t, 2, r.Len())

	_, err = r.Remove("missing")
	assert.ErrorIs(t, err, ErrLayoutNotFound)

	removed, err := r.Remove("mine")
	require.NoError(t, err)
	assert.Equal(t, "mine", removed.ID)
	assert.Equal(t, 1, r.Len())

	_, ok := r.Get("mine")
	assert.False(t, ok)
	assert.Len(t, r.ListByRoute("/trading"), 1)
}
