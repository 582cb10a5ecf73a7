package metrics

import (
	"github.com/ethpandaops/loadtest-collect/internal/catalog"
)

// Aggregated is the fleet-wide combination of node metrics.
type Aggregated struct {
	values map[string]float64
	nodes  int
}

// Aggregate combines node metrics using each metric's catalog rule.
//
// Sum metrics add every node's value. Average-of-present metrics average only the values
// strictly greater than zero, since a zero there means the node did not report the metric.
// Derived metrics are recomputed from the combined inputs rather than averaged per node.
// An empty input yields all-zero metrics and a node count of zero.
func Aggregate(nodes []NodeMetrics, c *catalog.Catalog) Aggregated {
	values := make(map[string]float64, c.Len())

	for _, def := range c.Base() {
		switch def.Rule {
		case catalog.RuleSum:
			values[def.Key] = sum(nodes, def.Key)
		case catalog.RuleAveragePresent:
			values[def.Key] = averagePresent(nodes, def.Key)
		}
	}

	derive(values, c)

	return Aggregated{
		values: values,
		nodes:  len(nodes),
	}
}

// Nodes is the number of node logs that contributed.
func (a Aggregated) Nodes() int {
	return a.nodes
}

// Value returns the combined metric for key, zero if the key is unknown.
func (a Aggregated) Value(key string) float64 {
	return a.values[key]
}

// Values returns a copy of every combined metric.
func (a Aggregated) Values() map[string]float64 {
	return copyValues(a.values)
}

func sum(nodes []NodeMetrics, key string) float64 {
	total := 0.0
	for _, n := range nodes {
		total += n.Value(key)
	}

	return total
}

func averagePresent(nodes []NodeMetrics, key string) float64 {
	var (
		total float64
		count int
	)

	for _, n := range nodes {
		if v := n.Value(key); v > 0 {
			total += v
			count++
		}
	}

	if count == 0 {
		return 0
	}

	return total / float64(count)
}
