package sqlite

import (
	"codeberg.org/miketth/layoutd/pkg/layouts"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T, path string) *LayoutStore {
	t.Helper()

	s, err := NewLayoutStore(path, zap.NewNop().Sugar())
	require.NoError(t, err)
	return s
}

func TestLayoutStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.db")
	s := newTestStore(t, path)

	arrangement := layouts.Arrangement{
		{ID: "book", Component: "orderbook", W: 6, H: 8, Settings: map[string]string{"depth": "25"}},
		{ID: "chart", Component: "chart", X: 6, W: 18, H: 8},
	}

	require.NoError(t, s.SaveLayout(layouts.Layout{ID: "default", RoutePath: "/trading"}))
	require.NoError(t, s.SaveLayout(layouts.Layout{ID: "custom-1", RoutePath: "/trading", CanDelete: true}))
	require.NoError(t, s.SaveLayout(layouts.Layout{ID: "depth", RoutePath: "/market-data"}))
	require.NoError(t, s.SaveLayout(layouts.Layout{ID: "default", RoutePath: "/trading", Arrangement: arrangement}))
	require.NoError(t, s.SetActive("/trading", "default"))
	require.NoError(t, s.SetActive("/trading", "custom-1"))
	require.NoError(t, s.SetActive("/market-data", "depth"))
	require.NoError(t, s.Close())

	// reopening runs the migrations again
	s = newTestStore(t, path)
	defer s.Close()

	ls, err := s.LoadLayouts()
	require.NoError(t, err)
	require.Len(t, ls, 3)
	assert.Equal(t, []string{"default", "custom-1", "depth"}, []string{ls[0].ID, ls[1].ID, ls[2].ID})
	assert.True(t, ls[0].Arrangement.Equal(arrangement))
	assert.False(t, ls[0].CanDelete)
	assert.True(t, ls[1].CanDelete)
	assert.Empty(t, ls[1].Arrangement)

	active, err := s.LoadActive()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"/trading": "custom-1", "/market-data": "depth"}, active)
}

func TestLayoutStoreDelete(t *testing.T) {
	s := newTestStore(t, filepath.Join(t.TempDir(), "layouts.db"))
	defer s.Close()

	require.NoError(t, s.SaveLayout(layouts.Layout{ID: "custom-1", RoutePath: "/trading", CanDelete: true}))
	require.NoError(t, s.SetActive("/trading", "custom-1"))

	require.NoError(t, s.DeleteLayout("custom-1"))
	require.NoError(t, s.ClearActive("/trading"))
	require.NoError(t, s.DeleteLayout("missing"))

	ls, err := s.LoadLayouts()
	require.NoError(t, err)
	assert.Empty(t, ls)

	active, err := s.LoadActive()
	require.NoError(t, err)
	assert.Empty(t, active)
}
