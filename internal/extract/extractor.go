// Package extract locates catalog metrics inside the text of a node's load-test log.
package extract

import (
	"math"
	"regexp"
	"strconv"

	"github.com/ethpandaops/loadtest-collect/internal/catalog"
)

// The worker colours some table labels; escape sequences would split a label from its separator.
var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// Value is the outcome of searching for one metric.
type Value struct {
	Number  float64
	Present bool
}

// Result maps every base metric key of a catalog to its extracted value.
type Result map[string]Value

// Missing returns the keys that were not found, in catalog order.
func (r Result) Missing(c *catalog.Catalog) []string {
	missing := make([]string, 0)
	for _, def := range c.Base() {
		if v, ok := r[def.Key]; !ok || !v.Present {
			missing = append(missing, def.Key)
		}
	}

	return missing
}

// Extract searches text for the first match of each base metric in the catalog.
// It never fails: a metric that cannot be found or parsed is reported as absent.
func Extract(text string, c *catalog.Catalog) Result {
	clean := ansiEscape.ReplaceAllString(text, "")
	base := c.Base()
	out := make(Result, len(base))

	for _, def := range base {
		out[def.Key] = extractOne(clean, def)
	}

	return out
}

func extractOne(text string, def catalog.Definition) Value {
	m := def.Pattern.FindStringSubmatch(text)
	if len(m) < 2 {
		return Value{}
	}

	n, ok := parse(m[1], def.Kind)
	if !ok {
		return Value{}
	}

	return Value{Number: n, Present: true}
}

func parse(raw string, kind catalog.Kind) (float64, bool) {
	if kind == catalog.KindInteger {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return 0, false
		}

		return float64(n), true
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}
