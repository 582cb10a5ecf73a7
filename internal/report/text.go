package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ethpandaops/loadtest-collect/internal/catalog"
)

const textWidth = 60

// textLabels are the fixed summary labels of the plain-text report.
var textLabels = map[string]string{
	catalog.KeyUsersCreated:      "Total Users Created",
	catalog.KeyConnected:         "Total Connected",
	catalog.KeyDisconnected:      "Total Disconnected",
	catalog.KeyMessagesSent:      "Total Messages Sent",
	catalog.KeyMessagesReceived:  "Total Messages Rcvd",
	catalog.KeyMessagesRead:      "Messages Marked Read",
	catalog.KeyReadAcks:          "Read Acks Received",
	catalog.KeyMessagesPerSec:    "Messages/sec",
	catalog.KeyAvgLatency:        "Avg Latency",
	catalog.KeyP95Latency:        "P95 Latency",
	catalog.KeyP99Latency:        "P99 Latency",
	catalog.KeyAvgConnectionTime: "Avg Connection Time",
	catalog.KeyElapsedTime:       "Avg Test Duration",
}

// textReporter renders fixed-width "Label: value" lines with section rules.
type textReporter struct{}

func (t *textReporter) Render(w io.Writer, r Report) error {
	bw := bufio.NewWriter(w)

	heavy := strings.Repeat("=", textWidth)
	light := strings.Repeat("-", textWidth)

	fmt.Fprintln(bw, heavy)
	fmt.Fprintln(bw, "AGGREGATED RESULTS")
	fmt.Fprintln(bw, heavy)
	writeLine(bw, "Total Nodes", fmt.Sprintf("%d", r.Nodes()))

	first := true
	for _, section := range catalog.Sections() {
		defs := r.Catalog.BySection(section)
		if len(defs) == 0 {
			continue
		}

		if !first {
			fmt.Fprintln(bw, light)
		}
		first = false

		for _, def := range defs {
			writeLine(bw, textLabel(def), FormatValue(def, r.Aggregated.Value(def.Key)))
		}
	}

	fmt.Fprintln(bw, heavy)

	return bw.Flush()
}

func textLabel(def catalog.Definition) string {
	if label, ok := textLabels[def.Key]; ok {
		return label
	}

	return def.Label
}

func writeLine(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%-22s%s\n", label+":", value)
}

// Compile-time interface compliance check
var _ Reporter = (*textReporter)(nil)
