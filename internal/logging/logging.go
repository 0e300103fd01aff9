// filepath: internal/logging/logging.go
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared application logger. It defaults to info level until
// Init is called with the configured level.
var Log = logrus.New()

// Init configures the shared logger with a specific level.
func Init(level string) {
	Log = NewLogger(level)
}

// NewLogger builds a JSON-formatted logger at the given level.
func NewLogger(level string) *logrus.Logger {
	var log = logrus.New()

	// Structured logging; output goes to stdout so container runtimes can
	// collect it.
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	switch strings.ToLower(level) {
	case "trace":
		log.SetLevel(logrus.TraceLevel)
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
