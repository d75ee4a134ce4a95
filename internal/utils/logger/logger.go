package logger

import (
	"io"
	"os"
	"strings"

	"TennisGraph/internal/config"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger from the log section.
// Logs go to stderr so command output on stdout stays clean.
func NewLogger(cfg config.LogConfig) *logrus.Logger {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg config.LogConfig, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	if level, err := logrus.ParseLevel(strings.ToLower(cfg.Level)); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(logrus.InfoLevel)
		if cfg.Level != "" {
			log.WithField("invalid_level", cfg.Level).Warn("invalid log level, using info")
		}
	}

	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return log
}
