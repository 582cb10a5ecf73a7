package report

import (
	"fmt"
	"io"

	"github.com/ethpandaops/loadtest-collect/internal/catalog"
	"gopkg.in/yaml.v3"
)

// yamlDocument is the structured form of a report.
type yamlDocument struct {
	Nodes      int           `yaml:"nodes"`
	Discovered int           `yaml:"discovered"`
	Failed     int           `yaml:"failed"`
	Sections   []yamlSection `yaml:"sections"`
}

type yamlSection struct {
	Name    string       `yaml:"name"`
	Metrics []yamlMetric `yaml:"metrics"`
}

type yamlMetric struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
	Rule  string `yaml:"rule"`
	Value any    `yaml:"value"`
	Unit  string `yaml:"unit,omitempty"`
}

// yamlReporter renders the report as a YAML document.
type yamlReporter struct{}

func (y *yamlReporter) Render(w io.Writer, r Report) error {
	doc := yamlDocument{
		Nodes:      r.Nodes(),
		Discovered: r.Discovered,
		Failed:     r.Failed,
		Sections:   make([]yamlSection, 0, len(catalog.Sections())),
	}

	for _, section := range catalog.Sections() {
		defs := r.Catalog.BySection(section)
		if len(defs) == 0 {
			continue
		}

		s := yamlSection{Name: string(section), Metrics: make([]yamlMetric, 0, len(defs))}
		for _, def := range defs {
			s.Metrics = append(s.Metrics, yamlMetric{
				Key:   def.Key,
				Label: def.Label,
				Rule:  string(def.Rule),
				Value: yamlValue(def, r.Aggregated.Value(def.Key)),
				Unit:  def.Unit,
			})
		}

		doc.Sections = append(doc.Sections, s)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode yaml report: %w", err)
	}

	return enc.Close()
}

func yamlValue(def catalog.Definition, v float64) any {
	if def.Kind == catalog.KindInteger {
		return int64(v)
	}

	return v
}

// Compile-time interface compliance check
var _ Reporter = (*yamlReporter)(nil)
