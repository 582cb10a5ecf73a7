// Package report renders the fleet aggregate in human-readable and structured formats.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ethpandaops/loadtest-collect/internal/catalog"
	"github.com/ethpandaops/loadtest-collect/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Output formats
const (
	FormatTable      = "table"
	FormatText       = "text"
	FormatYAML       = "yaml"
	FormatPrometheus = "prometheus"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the supported output formats.
func Formats() []string {
	return []string{FormatTable, FormatText, FormatYAML, FormatPrometheus}
}

// Report is everything a reporter renders.
type Report struct {
	Catalog    *catalog.Catalog
	Aggregated metrics.Aggregated
	Discovered int
	Failed     int
}

// Nodes is the number of logs that contributed to the aggregate.
func (r Report) Nodes() int {
	return r.Aggregated.Nodes()
}

// Reporter writes a report to w. Every catalog metric is rendered exactly once.
type Reporter interface {
	Render(w io.Writer, r Report) error
}

// New returns the reporter for format.
func New(log logrus.FieldLogger, format string) (Reporter, error) {
	switch format {
	case FormatTable, "":
		return NewTableReporter(NewRenderer(log), NewColorHelper()), nil
	case FormatText:
		return &textReporter{}, nil
	case FormatYAML:
		return &yamlReporter{}, nil
	case FormatPrometheus:
		return &prometheusReporter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: %v)", ErrUnknownFormat, format, Formats())
	}
}

// FormatValue renders v according to the metric's kind, precision and unit.
func FormatValue(def catalog.Definition, v float64) string {
	if def.Kind == catalog.KindInteger {
		return strconv.FormatInt(int64(v), 10)
	}

	return strconv.FormatFloat(v, 'f', def.Precision, 64) + def.Unit
}

func sectionTitle(section catalog.Section) string {
	switch section {
	case catalog.SectionCounts:
		return "Counts"
	case catalog.SectionThroughput:
		return "Throughput"
	case catalog.SectionLatency:
		return "Latency"
	case catalog.SectionErrors:
		return "Errors"
	default:
		return string(section)
	}
}
