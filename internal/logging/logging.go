package logging

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Logger is the reporting capability handed to every pipeline component.
// *logrus.Logger and *logrus.Entry both satisfy it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// New builds the process logger. Verbose switches the level to debug.
func New(verbose bool, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stderr
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}

// ForRun tags every entry of a single invocation with a fresh run id.
func ForRun(logger *logrus.Logger) *logrus.Entry {
	return logger.WithField("run_id", uuid.NewString())
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// OrDiscard lets constructors accept a nil logger.
func OrDiscard(l Logger) Logger {
	if l == nil {
		return Discard()
	}
	return l
}
