// Package catalog defines the fixed table of metrics scraped from node load-test logs.
//
// Each definition ties a metric key to the row label printed by the load-test worker,
// the numeric kind of its value and the rule used to combine it across nodes.
package catalog

import (
	"errors"
	"fmt"
	"regexp"
)

// Kind is the numeric type of a metric value.
type Kind string

const (
	// KindInteger values are whole counts.
	KindInteger Kind = "integer"
	// KindFloat values carry a fractional part (latencies, durations, rates).
	KindFloat Kind = "float"
)

// Rule is the aggregation rule used to combine a metric across nodes.
type Rule string

const (
	// RuleSum adds every node's value.
	RuleSum Rule = "sum"
	// RuleAveragePresent averages only values strictly greater than zero.
	RuleAveragePresent Rule = "average-of-present"
	// RuleDerived recomputes the metric from other, already combined, metrics.
	RuleDerived Rule = "derived"
)

// Section groups metrics in the rendered summary.
type Section string

const (
	// SectionCounts holds user and connection counters.
	SectionCounts Section = "counts"
	// SectionThroughput holds message counters and rates.
	SectionThroughput Section = "throughput"
	// SectionLatency holds latency and duration averages.
	SectionLatency Section = "latency"
	// SectionErrors holds error counters.
	SectionErrors Section = "errors"
)

// Sections returns report sections in render order.
func Sections() []Section {
	return []Section{SectionCounts, SectionThroughput, SectionLatency, SectionErrors}
}

var (
	// ErrEmptyKey is returned when a definition has no key.
	ErrEmptyKey = errors.New("metric key is required")
	// ErrDuplicateKey is returned when two definitions share a key.
	ErrDuplicateKey = errors.New("duplicate metric key")
	// ErrMissingPattern is returned when a base metric has no extraction pattern.
	ErrMissingPattern = errors.New("base metric requires an extraction pattern")
	// ErrMissingRatio is returned when a derived metric does not name its inputs.
	ErrMissingRatio = errors.New("derived metric requires numerator and denominator")
	// ErrForwardReference is returned when a derived metric uses a key defined after it.
	ErrForwardReference = errors.New("derived metric references an undefined or later metric")
	// ErrUnknownRule is returned for an unsupported aggregation rule.
	ErrUnknownRule = errors.New("unknown aggregation rule")
	// ErrUnknownKind is returned for an unsupported numeric kind.
	ErrUnknownKind = errors.New("unknown numeric kind")
)

// Ratio names the inputs of a derived rate metric.
type Ratio struct {
	Numerator   string
	Denominator string
}

// Definition describes a single metric.
type Definition struct {
	Key     string
	Label   string
	Pattern *regexp.Regexp // nil for derived metrics
	Kind    Kind
	Rule    Rule
	Section Section
	Unit    string
	// Precision is the number of decimals used when rendering float metrics.
	Precision int
	Ratio     *Ratio
}

// Derived reports whether the metric is computed rather than extracted.
func (d Definition) Derived() bool {
	return d.Rule == RuleDerived
}

// Catalog is an immutable, ordered set of metric definitions.
type Catalog struct {
	defs  []Definition
	index map[string]int
}

// New validates the definitions and builds a catalog preserving their order.
func New(defs ...Definition) (*Catalog, error) {
	c := &Catalog{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}

	for _, def := range defs {
		if err := c.validate(def); err != nil {
			return nil, fmt.Errorf("metric %q: %w", def.Key, err)
		}

		c.index[def.Key] = len(c.defs)
		c.defs = append(c.defs, def)
	}

	return c, nil
}

// MustNew is like New but panics on an invalid definition set.
func MustNew(defs ...Definition) *Catalog {
	c, err := New(defs...)
	if err != nil {
		panic(err)
	}

	return c
}

func (c *Catalog) validate(def Definition) error {
	if def.Key == "" {
		return ErrEmptyKey
	}

	if _, exists := c.index[def.Key]; exists {
		return ErrDuplicateKey
	}

	switch def.Kind {
	case KindInteger, KindFloat:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, def.Kind)
	}

	switch def.Rule {
	case RuleSum, RuleAveragePresent:
		if def.Pattern == nil {
			return ErrMissingPattern
		}
	case RuleDerived:
		if def.Ratio == nil || def.Ratio.Numerator == "" || def.Ratio.Denominator == "" {
			return ErrMissingRatio
		}

		for _, input := range []string{def.Ratio.Numerator, def.Ratio.Denominator} {
			if _, ok := c.index[input]; !ok {
				return fmt.Errorf("%w: %s", ErrForwardReference, input)
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRule, def.Rule)
	}

	return nil
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// Definitions returns a copy of every definition in catalog order.
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)

	return out
}

// Base returns the extracted (non-derived) definitions in catalog order.
func (c *Catalog) Base() []Definition {
	out := make([]Definition, 0, len(c.defs))
	for _, def := range c.defs {
		if !def.Derived() {
			out = append(out, def)
		}
	}

	return out
}

// Derived returns the derived definitions in catalog order.
func (c *Catalog) Derived() []Definition {
	out := make([]Definition, 0)
	for _, def := range c.defs {
		if def.Derived() {
			out = append(out, def)
		}
	}

	return out
}

// BySection returns the definitions rendered under the given section.
func (c *Catalog) BySection(section Section) []Definition {
	out := make([]Definition, 0)
	for _, def := range c.defs {
		if def.Section == section {
			out = append(out, def)
		}
	}

	return out
}

// Lookup returns the definition for key.
func (c *Catalog) Lookup(key string) (Definition, bool) {
	i, ok := c.index[key]
	if !ok {
		return Definition{}, false
	}

	return c.defs[i], true
}

// Keys returns every metric key in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.defs))
	for i, def := range c.defs {
		keys[i] = def.Key
	}

	return keys
}
