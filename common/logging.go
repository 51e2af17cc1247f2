package common

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger returns a logger writing to stderr at the given level. Unknown
// levels fall back to info.
func NewLogger(prefix, level string) *log.Logger {
	return newLogger(os.Stderr, prefix, level)
}

func newLogger(w io.Writer, prefix, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger
}
