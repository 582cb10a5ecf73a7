// Package metrics builds per-node metric sets and combines them into a fleet-wide aggregate.
package metrics

import (
	"math"

	"github.com/ethpandaops/loadtest-collect/internal/catalog"
	"github.com/ethpandaops/loadtest-collect/internal/extract"
)

// NodeMetrics holds every catalog metric for one successfully read node log.
// Metrics absent from the log are zero. Values are immutable once built.
type NodeMetrics struct {
	source  string
	values  map[string]float64
	missing []string
}

// Build resolves an extraction result into a complete metric set.
// Absent metrics become zero, then derived metrics are computed from the resolved base values.
func Build(source string, raw extract.Result, c *catalog.Catalog) NodeMetrics {
	base := make(map[string]float64, len(raw))
	for key, v := range raw {
		if v.Present {
			base[key] = v.Number
		}
	}

	node := FromValues(source, base, c)
	node.missing = raw.Missing(c)

	return node
}

// FromValues builds a metric set from already known base values.
// Keys missing from values are zero; keys outside the catalog are ignored.
func FromValues(source string, values map[string]float64, c *catalog.Catalog) NodeMetrics {
	resolved := make(map[string]float64, c.Len())
	for _, def := range c.Base() {
		resolved[def.Key] = sanitize(values[def.Key])
	}

	derive(resolved, c)

	return NodeMetrics{
		source:  source,
		values:  resolved,
		missing: []string{},
	}
}

// Source is the name of the log the metrics were read from.
func (n NodeMetrics) Source() string {
	return n.source
}

// Value returns the metric for key, zero if the key is unknown.
func (n NodeMetrics) Value(key string) float64 {
	return n.values[key]
}

// Values returns a copy of every metric.
func (n NodeMetrics) Values() map[string]float64 {
	return copyValues(n.values)
}

// Missing returns the base metric keys that were not found in the log.
func (n NodeMetrics) Missing() []string {
	out := make([]string, len(n.missing))
	copy(out, n.missing)

	return out
}

// Rate divides numerator by denominator, returning zero when the denominator is not positive.
func Rate(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}

	return sanitize(numerator / denominator)
}

// derive fills in every derived metric in catalog order.
// Inputs are always defined earlier in the catalog, so they are resolved by the time they are read.
func derive(values map[string]float64, c *catalog.Catalog) {
	for _, def := range c.Derived() {
		values[def.Key] = Rate(values[def.Ratio.Numerator], values[def.Ratio.Denominator])
	}
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}

	return v
}

func copyValues(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}

	return out
}
