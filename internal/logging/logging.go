// Package logging provides the structured logger shared by the ledgercheckd
// service and by validators that need to record non-fatal diagnostic detail.
// Findings are always returned as data; nothing in this package is ever the
// only record of a validation outcome.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a logger that writes JSON-formatted entries to stderr at info
// level. It does not use networkName; WithNetwork adds the network field to
// an entry.
func New(networkName string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)

	return log
}

// WithNetwork returns an entry pre-populated with the network field, the way
// every log line emitted by the service should be tagged.
func WithNetwork(log *logrus.Logger, networkName string) *logrus.Entry {
	return log.WithField("network", networkName)
}
