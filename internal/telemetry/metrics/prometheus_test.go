package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupPrometheus(t *testing.T) {
	extra := prometheus.NewCounter(prometheus.CounterOpts{Name: "extra_total", Help: "extra"})
	reg := SetupPrometheus("stravastats", "abc123", nil, extra)

	count, err := testutil.GatherAndCount(reg, "stravastats_version_info", "extra_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != "stravastats_version_info" {
			continue
		}
		require.Len(t, family.Metric, 1)
		assert.Equal(t, "abc123", family.Metric[0].Label[0].GetValue())
		assert.Equal(t, 1.0, family.Metric[0].Gauge.GetValue())
	}
}

func TestNewManager(t *testing.T) {
	manager, reg := NewTestManagerAndRegistry()
	manager.CounterRequests.WithLabelValues("GET", "200").Inc()
	manager.HistHistoryLoadDuration.Observe(1.5)

	count, err := testutil.GatherAndCount(reg,
		"stravastats_test_server_request",
		"stravastats_test_server_history_load_duration_seconds",
	)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
