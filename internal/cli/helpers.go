package cli

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gggplot/s5get/internal/logger"
	"github.com/gggplot/s5get/pkg/config"
	"github.com/gggplot/s5get/pkg/hub"
	"github.com/gggplot/s5get/pkg/orchestrator"
	"github.com/gggplot/s5get/pkg/transfer"
)

// These variables will be set by the main package.
var (
	Verbose *bool
	Quiet   *bool
	NoColor *bool
)

func newLogger() *logrus.Logger {
	var verbose, quiet, noColor bool
	if Verbose != nil {
		verbose = *Verbose
	}
	if Quiet != nil {
		quiet = *Quiet
	}
	if NoColor != nil {
		noColor = *NoColor
	}
	return logger.New(verbose, quiet, noColor)
}

// loadSettings loads the config file and resolves the named section.
func loadSettings(configFile, section string) (*config.Settings, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve(section)
}

// buildOrchestrator assembles the hub client, transfer engine and
// orchestrator from resolved settings.
func buildOrchestrator(s *config.Settings, log *logrus.Logger) (*orchestrator.Orchestrator, error) {
	client, err := hub.New(s.Hub, s.Username, s.Password, hub.Options{Tries: s.NumTries}, log)
	if err != nil {
		return nil, err
	}
	engine := transfer.NewEngine(client, transfer.EngineOptions{
		ChunkSize: s.BlockSize,
		LogEvery:  s.LogBlockSize,
	}, log)

	return &orchestrator.Orchestrator{
		Resolver:  client,
		Checksums: client,
		Engine:    engine,
		Filter:    hub.Filter{Product: s.Product, Platform: s.Platform, Mode: s.Mode},
		Policy:    transfer.RetryPolicy{MaxAttempts: s.NumTries, OnMismatch: s.OnBadChecksum},
		OutputDir: s.OutputDir,
		Log:       log,
	}, nil
}

// parseDate accepts dates in YYYYMMDD or YYYY-MM-DD format.
func parseDate(v string) (time.Time, error) {
	switch len(v) {
	case 8:
		return time.Parse("20060102", v)
	case 10:
		return time.Parse("2006-01-02", v)
	default:
		return time.Time{}, fmt.Errorf("bad format for date string %q (want YYYYMMDD or YYYY-MM-DD)", v)
	}
}
