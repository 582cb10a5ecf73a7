package report

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const metricNamespace = "loadtest"

// prometheusReporter renders the aggregate in the Prometheus text exposition format,
// suitable for a node_exporter textfile collector.
type prometheusReporter struct{}

func (p *prometheusReporter) Render(w io.Writer, r Report) error {
	registry, err := newRegistry(r)
	if err != nil {
		return err
	}

	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric family %s: %w", mf.GetName(), err)
		}
	}

	return nil
}

// newRegistry builds a registry holding one gauge per catalog metric plus the run counters.
func newRegistry(r Report) (*prometheus.Registry, error) {
	registry := prometheus.NewRegistry()

	gauge := func(name, help string, v float64) error {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      name,
			Help:      help,
		})
		g.Set(v)

		if err := registry.Register(g); err != nil {
			return fmt.Errorf("failed to register %s: %w", name, err)
		}

		return nil
	}

	if err := gauge("nodes", "Number of node logs aggregated.", float64(r.Nodes())); err != nil {
		return nil, err
	}

	if err := gauge("logs_discovered", "Number of node logs discovered.", float64(r.Discovered)); err != nil {
		return nil, err
	}

	if err := gauge("logs_unreadable", "Number of node logs that could not be read.", float64(r.Failed)); err != nil {
		return nil, err
	}

	for _, def := range r.Catalog.Definitions() {
		help := fmt.Sprintf("%s (%s).", def.Label, def.Rule)
		if def.Unit != "" {
			help = fmt.Sprintf("%s in %s (%s).", def.Label, def.Unit, def.Rule)
		}

		if err := gauge(def.Key, help, r.Aggregated.Value(def.Key)); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// Compile-time interface compliance check
var _ Reporter = (*prometheusReporter)(nil)
