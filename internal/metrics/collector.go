package metrics

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ethpandaops/loadtest-collect/internal/catalog"
	"github.com/sirupsen/logrus"
)

// FileFailure records a node log that could not be read.
type FileFailure struct {
	Path string
	Err  error
}

// SummaryMetric provides run statistics alongside the fleet aggregate
type SummaryMetric struct {
	TotalDuration time.Duration
	Discovered    int
	Parsed        int
	Failed        int
	ParseRate     float64 // percentage
	Aggregated    Aggregated
}

// Collector gathers node results, possibly from concurrent workers.
// Results are keyed by the position of the log in the discovered file list,
// so the aggregate does not depend on completion order.
type Collector interface {
	Start(ctx context.Context) error
	Stop() error
	RecordNode(index int, node NodeMetrics)
	RecordFailure(index int, failure FileFailure)
	GetNodes() []NodeMetrics
	GetFailures() []FileFailure
	GetSummary() SummaryMetric
}

// collector implements Collector interface
type collector struct {
	log        logrus.FieldLogger
	catalog    *catalog.Catalog
	discovered int

	mu        sync.RWMutex
	nodes     map[int]NodeMetrics
	failures  map[int]FileFailure
	startTime time.Time
}

// NewCollector creates a collector for a run over the given number of discovered logs.
func NewCollector(log logrus.FieldLogger, c *catalog.Catalog, discovered int) Collector {
	return &collector{
		log:        log.WithField("component", "metrics_collector"),
		catalog:    c,
		discovered: discovered,
		nodes:      make(map[int]NodeMetrics, discovered),
		failures:   make(map[int]FileFailure),
	}
}

func (c *collector) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startTime = time.Now()

	c.log.Debug("metrics collector started")

	return nil
}

func (c *collector) Stop() error {
	c.log.Debug("metrics collector stopped")

	return nil
}

func (c *collector) RecordNode(index int, node NodeMetrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nodes[index] = node
}

func (c *collector) RecordFailure(index int, failure FileFailure) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[index] = failure
}

func (c *collector) GetNodes() []NodeMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]NodeMetrics, 0, len(c.nodes))
	for _, i := range sortedKeys(c.nodes) {
		result = append(result, c.nodes[i])
	}

	return result
}

func (c *collector) GetFailures() []FileFailure {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]FileFailure, 0, len(c.failures))
	for _, i := range sortedKeys(c.failures) {
		result = append(result, c.failures[i])
	}

	return result
}

func (c *collector) GetSummary() SummaryMetric {
	nodes := c.GetNodes()

	c.mu.RLock()
	defer c.mu.RUnlock()

	var totalDuration time.Duration
	if !c.startTime.IsZero() {
		totalDuration = time.Since(c.startTime)
	}

	parseRate := 0.0
	if c.discovered > 0 {
		parseRate = float64(len(nodes)) / float64(c.discovered) * 100.0
	}

	return SummaryMetric{
		TotalDuration: totalDuration,
		Discovered:    c.discovered,
		Parsed:        len(nodes),
		Failed:        len(c.failures),
		ParseRate:     parseRate,
		Aggregated:    Aggregate(nodes, c.catalog),
	}
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	return keys
}

// Compile-time interface compliance check
var _ Collector = (*collector)(nil)
