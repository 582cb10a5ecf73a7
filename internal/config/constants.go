package config

const (
	// DefaultLogPattern matches the log files written by each load-test node.
	DefaultLogPattern = "node-*.log"
	// DefaultOutputFormat is the summary format used when none is configured.
	DefaultOutputFormat = "table"
	// DefaultParseWorkers is the number of node logs read concurrently.
	DefaultParseWorkers = 4
	// DefaultLogLevel is the logrus level used when LOG_LEVEL is unset.
	DefaultLogLevel = "info"
	// DefaultLogFormat is the logrus formatter used when LOG_FORMAT is unset.
	DefaultLogFormat = "text"
	// DefaultEnvFile is the env file loaded when --env is not given.
	DefaultEnvFile = ".env"
)
