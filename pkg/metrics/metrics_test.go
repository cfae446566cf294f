package metrics

import (
	"codeberg.org/miketth/layoutd/pkg/layouts"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLayoutMetricsFollowManager(t *testing.T) {
	reg := prometheus.NewRegistry()
	lm := NewLayoutMetrics(reg)

	m := layouts.NewManager(nil, zap.NewNop().Sugar())
	m.Restore([]layouts.Layout{{ID: "default", RoutePath: "/trading"}}, nil)
	lm.Attach(m, []string{"/trading", "/market-data"})

	assert.Equal(t, 1.0, testutil.ToFloat64(lm.LayoutsTotal.WithLabelValues("/trading")))
	assert.Equal(t, 0.0, testutil.ToFloat64(lm.LayoutsTotal.WithLabelValues("/market-data")))

	_, err := m.CreateLayout("/trading", "custom-1")
	require.NoError(t, err)
	require.NoError(t, m.EditDraft(layouts.Arrangement{{ID: "chart"}}))
	assert.Equal(t, 1.0, testutil.ToFloat64(lm.Dirty))

	_, err = m.SaveLayout()
	require.NoError(t, err)
	assert.Equal(t, 0.0, testutil.ToFloat64(lm.Dirty))
	assert.Equal(t, 2.0, testutil.ToFloat64(lm.LayoutsTotal.WithLabelValues("/trading")))

	require.NoError(t, m.DeleteLayout("custom-1"))
	assert.Equal(t, 1.0, testutil.ToFloat64(lm.LayoutsTotal.WithLabelValues("/trading")))

	assert.Equal(t, 1.0, testutil.ToFloat64(lm.Events.WithLabelValues(string(layouts.EventLayoutCreated))))
	assert.Equal(t, 1.0, testutil.ToFloat64(lm.Events.WithLabelValues(string(layouts.EventDraftEdited))))
	assert.Equal(t, 1.0, testutil.ToFloat64(lm.Events.WithLabelValues(string(layouts.EventLayoutSaved))))
	assert.Equal(t, 1.0, testutil.ToFloat64(lm.Events.WithLabelValues(string(layouts.EventLayoutDeleted))))
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
	assert.NotNil(t, Handler(reg))
}
