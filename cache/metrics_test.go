/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package cache

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics(t *testing.T) {
	pm := NewPrometheusMetricsWithOpts(PrometheusMetricsOpts{Namespace: "test"})
	pm.MustRegister()
	defer pm.Unregister()

	pm.SetAmount(42)
	pm.IncHits()
	pm.IncHits()
	pm.IncMisses()
	pm.AddEvictions(3)
	pm.AddExpirations(2)

	assert.Equal(t, 42, int(testutil.ToFloat64(pm.EntriesAmount)))
	assert.Equal(t, 2, int(testutil.ToFloat64(pm.HitsTotal)))
	assert.Equal(t, 1, int(testutil.ToFloat64(pm.MissesTotal)))
	assert.Equal(t, 3, int(testutil.ToFloat64(pm.EvictionsTotal)))
	assert.Equal(t, 2, int(testutil.ToFloat64(pm.ExpirationsTotal)))
}

func TestPrometheusMetricsMustCurryWith(t *testing.T) {
	pm := NewPrometheusMetricsWithOpts(PrometheusMetricsOpts{CurriedLabelNames: []string{"policy"}})
	lruMetrics := pm.MustCurryWith(prometheus.Labels{"policy": "lru"})
	lfuMetrics := pm.MustCurryWith(prometheus.Labels{"policy": "lfu"})

	lruMetrics.IncHits()
	lruMetrics.IncHits()
	lfuMetrics.IncHits()

	require.Equal(t, 2, int(testutil.ToFloat64(pm.HitsTotal.WithLabelValues("lru"))))
	require.Equal(t, 1, int(testutil.ToFloat64(pm.HitsTotal.WithLabelValues("lfu"))))
}

func TestInMemoryMetrics(t *testing.T) {
	im := NewInMemoryMetrics()

	im.SetAmount(10)
	im.IncHits()
	im.IncMisses()
	im.IncMisses()
	im.AddEvictions(4)
	im.AddExpirations(1)

	assert.Equal(t, 10, im.Amount())
	assert.Equal(t, 1, im.Hits())
	assert.Equal(t, 2, im.Misses())
	assert.Equal(t, 4, im.Evictions())
	assert.Equal(t, 1, im.Expirations())

	im.SetAmount(3)
	assert.Equal(t, 3, im.Amount())
}
