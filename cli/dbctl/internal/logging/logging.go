// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

const defaultLevel = log.WarnLevel

// Setup sends logs to w in text form. DBLAB_DEBUG=1 forces debug level,
// otherwise DBLAB_LOG_LEVEL applies (default warn). An unparsable level
// falls back to the default and is reported once.
func Setup(w io.Writer) {
	log.SetOutput(w)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.SetLevel(Level())
	if raw := strings.TrimSpace(os.Getenv("DBLAB_LOG_LEVEL")); raw != "" {
		if _, err := log.ParseLevel(raw); err != nil {
			log.Warnf("ignoring DBLAB_LOG_LEVEL=%q: %v", raw, err)
		}
	}
}

// Level resolves the configured level without touching the logger.
func Level() log.Level {
	if os.Getenv("DBLAB_DEBUG") == "1" {
		return log.DebugLevel
	}
	if raw := strings.TrimSpace(os.Getenv("DBLAB_LOG_LEVEL")); raw != "" {
		if lvl, err := log.ParseLevel(raw); err == nil {
			return lvl
		}
	}
	return defaultLevel
}
