package report

import (
	"fmt"
	"io"

	"github.com/ethpandaops/loadtest-collect/internal/catalog"
)

// RenderCatalog writes the metric catalog as a table.
func RenderCatalog(w io.Writer, renderer Renderer, c *catalog.Catalog) error {
	headers := []string{"Key", "Label", "Kind", "Rule", "Section", "Unit"}
	rows := make([][]string, 0, c.Len())

	for _, def := range c.Definitions() {
		label := def.Label
		if def.Derived() {
			label = fmt.Sprintf("%s = %s / %s", def.Label, def.Ratio.Numerator, def.Ratio.Denominator)
		}

		rows = append(rows, []string{def.Key, label, string(def.Kind), string(def.Rule), string(def.Section), def.Unit})
	}

	_, err := fmt.Fprint(w, renderer.RenderToString(headers, rows))

	return err
}
