package metrics

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/ethpandaops/loadtest-collect/internal/catalog"
	"github.com/ethpandaops/loadtest-collect/internal/extract"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(values map[string]float64) NodeMetrics {
	return FromValues("node", values, catalog.Default())
}

func TestBuild_MissingMetricsAreZero(t *testing.T) {
	t.Parallel()

	c := catalog.Default()
	raw := extract.Extract("Messages Sent | 40\n", c)
	n := Build("node-1.log", raw, c)

	values := n.Values()
	require.Len(t, values, c.Len())
	for _, key := range c.Keys() {
		_, ok := values[key]
		assert.True(t, ok, key)
	}

	assert.InDelta(t, 40.0, n.Value(catalog.KeyMessagesSent), 1e-9)
	assert.Zero(t, n.Value(catalog.KeyElapsedTime))
	assert.Zero(t, n.Value(catalog.KeyMessagesPerSec))
	assert.Equal(t, "node-1.log", n.Source())
	assert.Len(t, n.Missing(), len(c.Base())-1)
	assert.NotContains(t, n.Missing(), catalog.KeyMessagesSent)
}

func TestBuild_DerivesRate(t *testing.T) {
	t.Parallel()

	c := catalog.Default()
	raw := extract.Extract("Messages Sent │ 500\nElapsed Time │ 20.0s\n", c)
	n := Build("node-1.log", raw, c)

	assert.InDelta(t, 25.0, n.Value(catalog.KeyMessagesPerSec), 1e-9)
}

func TestBuild_ZeroElapsedGivesZeroRate(t *testing.T) {
	t.Parallel()

	c := catalog.Default()
	raw := extract.Extract("Messages Sent │ 500\nElapsed Time │ 0.0s\n", c)
	n := Build("node-1.log", raw, c)

	rate := n.Value(catalog.KeyMessagesPerSec)
	assert.Zero(t, rate)
	assert.False(t, math.IsNaN(rate) || math.IsInf(rate, 0))
}

func TestNodeMetrics_Immutable(t *testing.T) {
	t.Parallel()

	n := node(map[string]float64{catalog.KeyMessagesSent: 5})
	values := n.Values()
	values[catalog.KeyMessagesSent] = 500

	assert.InDelta(t, 5.0, n.Value(catalog.KeyMessagesSent), 1e-9)
}

func TestRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		numerator   float64
		denominator float64
		expected    float64
	}{
		{name: "normal", numerator: 100, denominator: 10, expected: 10},
		{name: "zero denominator", numerator: 100, denominator: 0, expected: 0},
		{name: "zero over zero", numerator: 0, denominator: 0, expected: 0},
		{name: "negative denominator", numerator: 100, denominator: -1, expected: 0},
		{name: "overflow", numerator: math.MaxFloat64, denominator: 1e-300, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Rate(tt.numerator, tt.denominator), 1e-9)
		})
	}
}

func TestAggregate_Empty(t *testing.T) {
	t.Parallel()

	c := catalog.Default()
	agg := Aggregate(nil, c)

	assert.Equal(t, 0, agg.Nodes())
	require.Len(t, agg.Values(), c.Len())
	for key, v := range agg.Values() {
		assert.Zero(t, v, key)
	}
}

func TestAggregate_SumIncludesZeros(t *testing.T) {
	t.Parallel()

	nodes := []NodeMetrics{
		node(map[string]float64{catalog.KeyErrorsAuth: 2}),
		node(map[string]float64{catalog.KeyErrorsAuth: 3}),
		node(map[string]float64{catalog.KeyErrorsAuth: 0}),
	}

	agg := Aggregate(nodes, catalog.Default())

	assert.InDelta(t, 5.0, agg.Value(catalog.KeyErrorsAuth), 1e-9)
	assert.Equal(t, 3, agg.Nodes())
}

func TestAggregate_AverageOfPresent(t *testing.T) {
	t.Parallel()

	nodes := []NodeMetrics{
		node(map[string]float64{catalog.KeyP99Latency: 10}),
		node(map[string]float64{catalog.KeyP99Latency: 0}),
		node(map[string]float64{catalog.KeyP99Latency: 20}),
	}

	agg := Aggregate(nodes, catalog.Default())

	assert.InDelta(t, 15.0, agg.Value(catalog.KeyP99Latency), 1e-9)
	assert.Zero(t, agg.Value(catalog.KeyAvgLatency))
}

func TestAggregate_DerivedRateIndependentOfSplit(t *testing.T) {
	t.Parallel()

	c := catalog.Default()

	split := Aggregate([]NodeMetrics{
		node(map[string]float64{catalog.KeyMessagesSent: 50, catalog.KeyElapsedTime: 5}),
		node(map[string]float64{catalog.KeyMessagesSent: 50, catalog.KeyElapsedTime: 5}),
	}, c)
	single := Aggregate([]NodeMetrics{
		node(map[string]float64{catalog.KeyMessagesSent: 100, catalog.KeyElapsedTime: 10}),
	}, c)

	assert.InDelta(t, 100.0, split.Value(catalog.KeyMessagesSent), 1e-9)
	assert.InDelta(t, 5.0, split.Value(catalog.KeyElapsedTime), 1e-9)
	assert.InDelta(t, 20.0, split.Value(catalog.KeyMessagesPerSec), 1e-9)
	assert.InDelta(t, 10.0, single.Value(catalog.KeyMessagesPerSec), 1e-9)
}

func TestAggregate_DerivedRateFromAggregatedInputs(t *testing.T) {
	t.Parallel()

	// Averaging per-node rates would give (100/5 + 100/20) / 2 = 12.5.
	agg := Aggregate([]NodeMetrics{
		node(map[string]float64{catalog.KeyMessagesSent: 100, catalog.KeyElapsedTime: 5}),
		node(map[string]float64{catalog.KeyMessagesSent: 100, catalog.KeyElapsedTime: 20}),
	}, catalog.Default())

	assert.InDelta(t, 12.5, agg.Value(catalog.KeyElapsedTime), 1e-9)
	assert.InDelta(t, 16.0, agg.Value(catalog.KeyMessagesPerSec), 1e-9)
}

func TestAggregate_ZeroElapsedEverywhere(t *testing.T) {
	t.Parallel()

	agg := Aggregate([]NodeMetrics{
		node(map[string]float64{catalog.KeyMessagesSent: 100}),
		node(map[string]float64{catalog.KeyMessagesSent: 200}),
	}, catalog.Default())

	rate := agg.Value(catalog.KeyMessagesPerSec)
	assert.Zero(t, rate)
	assert.False(t, math.IsNaN(rate) || math.IsInf(rate, 0))
	assert.InDelta(t, 300.0, agg.Value(catalog.KeyMessagesSent), 1e-9)
}

func TestAggregate_EndToEndTexts(t *testing.T) {
	t.Parallel()

	c := catalog.Default()
	nodes := make([]NodeMetrics, 0, 3)

	for _, name := range []string{"node-1.log", "node-2.log", "node-3.log"} {
		raw := extract.Extract("Messages Sent | 100\nElapsed Time | 10s\n", c)
		nodes = append(nodes, Build(name, raw, c))
	}

	agg := Aggregate(nodes, c)

	assert.Equal(t, 3, agg.Nodes())
	assert.InDelta(t, 300.0, agg.Value(catalog.KeyMessagesSent), 1e-9)
	assert.InDelta(t, 10.0, agg.Value(catalog.KeyElapsedTime), 1e-9)
	assert.InDelta(t, 30.0, agg.Value(catalog.KeyMessagesPerSec), 1e-9)
}

func TestCollector_OrdersByIndex(t *testing.T) {
	t.Parallel()

	c := catalog.Default()
	col := NewCollector(logrus.New(), c, 4)
	require.NoError(t, col.Start(context.Background()))

	col.RecordNode(2, FromValues("node-3.log", map[string]float64{catalog.KeyMessagesSent: 3}, c))
	col.RecordFailure(1, FileFailure{Path: "node-2.log", Err: errors.New("permission denied")})
	col.RecordNode(0, FromValues("node-1.log", map[string]float64{catalog.KeyMessagesSent: 1}, c))
	col.RecordNode(3, FromValues("node-4.log", map[string]float64{catalog.KeyMessagesSent: 4}, c))

	nodes := col.GetNodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, "node-1.log", nodes[0].Source())
	assert.Equal(t, "node-3.log", nodes[1].Source())
	assert.Equal(t, "node-4.log", nodes[2].Source())

	failures := col.GetFailures()
	require.Len(t, failures, 1)
	assert.Equal(t, "node-2.log", failures[0].Path)

	summary := col.GetSummary()
	assert.Equal(t, 4, summary.Discovered)
	assert.Equal(t, 3, summary.Parsed)
	assert.Equal(t, 1, summary.Failed)
	assert.InDelta(t, 75.0, summary.ParseRate, 1e-9)
	assert.Equal(t, 3, summary.Aggregated.Nodes())
	assert.InDelta(t, 8.0, summary.Aggregated.Value(catalog.KeyMessagesSent), 1e-9)

	require.NoError(t, col.Stop())
}

func TestCollector_NoDiscoveredFiles(t *testing.T) {
	t.Parallel()

	col := NewCollector(logrus.New(), catalog.Default(), 0)
	summary := col.GetSummary()

	assert.Zero(t, summary.ParseRate)
	assert.Zero(t, summary.Aggregated.Nodes())
	assert.Zero(t, summary.TotalDuration)
}
