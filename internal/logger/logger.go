// Package logger owns the process-wide structured logger for the forensic
// analysis service. Pipeline stages log through stage-scoped entries so a
// single run can be reconstructed from the event stream.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is shared by every layer; call sites attach their own fields per
// entry rather than configuring their own loggers.
var Logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(levelFromEnv(os.Getenv("LOG_LEVEL")))
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	return l
}

// levelFromEnv maps a LOG_LEVEL value onto a logrus level. Unset or
// unrecognized values fall back to info.
func levelFromEnv(value string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// ForStage creates an entry scoped to one pipeline stage, so stage logs
// carry a uniform discriminator field.
func ForStage(stage string) *logrus.Entry {
	return Logger.WithField("stage", stage)
}

// WithFields creates an entry with the given fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Logger.WithFields(fields)
}

// WithError creates an entry with an error field.
func WithError(err error) *logrus.Entry {
	return Logger.WithError(err)
}
