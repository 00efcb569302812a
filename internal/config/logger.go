// internal/config/logger.go
package config

import (
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger builds the process logger. The dump itself never goes
// through it: with a serial sink the log is the console's only output,
// with stdout as sink main lowers it to errors so the dump stays clean.
// debug enables per-line progress, quiet keeps errors only.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
