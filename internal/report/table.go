package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ethpandaops/loadtest-collect/internal/catalog"
)

// TableReporter renders the aggregate as one table per section.
type TableReporter struct {
	renderer Renderer
	colors   *ColorHelper
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(renderer Renderer, colors *ColorHelper) *TableReporter {
	return &TableReporter{
		renderer: renderer,
		colors:   colors,
	}
}

// Render writes the overview table followed by a table per section.
func (t *TableReporter) Render(w io.Writer, r Report) error {
	var parseRate float64
	if r.Discovered > 0 {
		parseRate = float64(r.Nodes()) / float64(r.Discovered) * 100.0
	}

	headers := []string{"Metric", "Value"}
	overview := [][]string{
		{"Total Nodes", t.colors.Bold(strconv.Itoa(r.Nodes()))},
		{"Logs Discovered", strconv.Itoa(r.Discovered)},
		{"Logs Unreadable", t.colors.FormatErrorCount(strconv.Itoa(r.Failed), float64(r.Failed))},
		{"Parse Rate", t.colors.FormatPercentage(parseRate)},
	}

	if _, err := fmt.Fprint(w, "\n"+t.colors.Header("▸ Aggregated Results")+"\n\n"+t.renderer.RenderToString(headers, overview)); err != nil {
		return err
	}

	for _, section := range catalog.Sections() {
		defs := r.Catalog.BySection(section)
		if len(defs) == 0 {
			continue
		}

		rows := make([][]string, 0, len(defs))
		for _, def := range defs {
			rows = append(rows, []string{def.Label, t.formatValue(def, r.Aggregated.Value(def.Key))})
		}

		if _, err := fmt.Fprint(w, "\n"+t.colors.Header("▸ "+sectionTitle(section))+"\n\n"+t.renderer.RenderToString(headers, rows)); err != nil {
			return err
		}
	}

	return nil
}

func (t *TableReporter) formatValue(def catalog.Definition, v float64) string {
	text := FormatValue(def, v)

	switch {
	case def.Section == catalog.SectionErrors:
		return t.colors.FormatErrorCount(text, v)
	case v == 0:
		return t.colors.Muted(text)
	default:
		return text
	}
}

// Compile-time interface compliance check
var _ Reporter = (*TableReporter)(nil)
