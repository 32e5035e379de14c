package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the logger shared by the CLI commands and injected into the hub
// client, transfer engine and orchestrator. Quiet shows warnings and up,
// verbose enables debug output.
func New(verbose, quiet, noColor bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	switch {
	case quiet:
		log.SetLevel(logrus.WarnLevel)
	case verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	if noColor {
		log.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: false,
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			ForceColors:   true,
			FullTimestamp: false,
		})
	}

	return log
}

// Discard returns a logger that drops everything. Components accept a
// logrus.FieldLogger and tests that don't care about output pass this.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
