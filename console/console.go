// Package console is the framework's logging facade. Framework and
// application code log through Log, Warn and Error; the output is handled by
// a logrus logger that the host program configures once at startup.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu     sync.RWMutex
	logger = logrus.New()
)

// Configure sets the level ("debug", "info", "warn", "error") and format
// ("text" or "json") of the shared logger.
func Configure(level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("console: %w", err)
	}

	var formatter logrus.Formatter
	switch strings.ToLower(format) {
	case "", "text":
		formatter = &logrus.TextFormatter{FullTimestamp: true}
	case "json":
		formatter = &logrus.JSONFormatter{}
	default:
		return fmt.Errorf("console: unknown log format %q", format)
	}

	mu.Lock()
	defer mu.Unlock()
	logger.SetLevel(lvl)
	logger.SetFormatter(formatter)
	return nil
}

// SetOutput redirects log output, e.g. away from a terminal UI.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

// Logger returns the shared logger.
func Logger() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// With returns an entry carrying structured fields.
func With(fields logrus.Fields) *logrus.Entry {
	return Logger().WithFields(fields)
}

// Debug logs at debug level.
func Debug(args ...any) {
	Logger().Debug(join(args))
}

// Log logs at info level.
func Log(args ...any) {
	Logger().Info(join(args))
}

// Warn logs at warning level.
func Warn(args ...any) {
	Logger().Warn(join(args))
}

// Error logs at error level.
func Error(args ...any) {
	Logger().Error(join(args))
}

// join mirrors the browser console: arguments are separated by spaces.
func join(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	return strings.Join(parts, " ")
}
