package catalog

import (
	"regexp"
)

// Metric keys of the default catalog.
const (
	KeyUsersCreated      = "users_created"
	KeyConnected         = "connected"
	KeyDisconnected      = "disconnected"
	KeyMessagesSent      = "messages_sent"
	KeyMessagesReceived  = "messages_received"
	KeyMessagesRead      = "messages_read"
	KeyReadAcks          = "read_acks"
	KeyMessagesPerSec    = "messages_per_sec"
	KeyAvgLatency        = "avg_latency"
	KeyP95Latency        = "p95_latency"
	KeyP99Latency        = "p99_latency"
	KeyAvgConnectionTime = "avg_connection_time"
	KeyElapsedTime       = "elapsed_time"
	KeyErrorsAuth        = "errors_auth"
	KeyErrorsConnection  = "errors_connection"
	KeyErrorsMessage     = "errors_message"
	KeyTotalErrors       = "total_errors"
)

const (
	// columnSeparator matches the box-drawing glyph the worker's table uses, or a plain pipe.
	columnSeparator = `\s*[│|]\s*`

	integerValue = `(\d+)`
	floatValue   = `(\d+(?:\.\d+)?)`
)

// RowPattern builds the extraction pattern for a "<Label> │ <value>" table row.
// The unit suffix, if any, is allowed but not required after the value.
func RowPattern(label string, kind Kind) *regexp.Regexp {
	value := integerValue
	if kind == KindFloat {
		value = floatValue
	}

	return regexp.MustCompile(`\b` + regexp.QuoteMeta(label) + columnSeparator + value)
}

func counter(key, label string, section Section) Definition {
	return Definition{
		Key:     key,
		Label:   label,
		Pattern: RowPattern(label, KindInteger),
		Kind:    KindInteger,
		Rule:    RuleSum,
		Section: section,
	}
}

func average(key, label, unit string, precision int) Definition {
	return Definition{
		Key:       key,
		Label:     label,
		Pattern:   RowPattern(label, KindFloat),
		Kind:      KindFloat,
		Rule:      RuleAveragePresent,
		Section:   SectionLatency,
		Unit:      unit,
		Precision: precision,
	}
}

var defaultCatalog = MustNew(
	counter(KeyUsersCreated, "Users Created", SectionCounts),
	counter(KeyConnected, "Connected", SectionCounts),
	counter(KeyDisconnected, "Disconnected", SectionCounts),

	counter(KeyMessagesSent, "Messages Sent", SectionThroughput),
	counter(KeyMessagesReceived, "Messages Received", SectionThroughput),
	counter(KeyMessagesRead, "Messages Marked Read", SectionThroughput),
	counter(KeyReadAcks, "Read Acks Received", SectionThroughput),

	average(KeyAvgLatency, "Avg Message Latency", "ms", 2),
	average(KeyP95Latency, "P95 Message Latency", "ms", 2),
	average(KeyP99Latency, "P99 Message Latency", "ms", 2),
	average(KeyAvgConnectionTime, "Avg Connection Time", "ms", 2),
	average(KeyElapsedTime, "Elapsed Time", "s", 1),

	Definition{
		Key:       KeyMessagesPerSec,
		Label:     "Messages/sec",
		Kind:      KindFloat,
		Rule:      RuleDerived,
		Section:   SectionThroughput,
		Precision: 2,
		Ratio: &Ratio{
			Numerator:   KeyMessagesSent,
			Denominator: KeyElapsedTime,
		},
	},

	counter(KeyErrorsAuth, "Auth Errors", SectionErrors),
	counter(KeyErrorsConnection, "Connection Errors", SectionErrors),
	counter(KeyErrorsMessage, "Message Errors", SectionErrors),
	counter(KeyTotalErrors, "Total Errors", SectionErrors),
)

// Default returns the catalog matching the load-test worker's summary table.
func Default() *Catalog {
	return defaultCatalog
}
