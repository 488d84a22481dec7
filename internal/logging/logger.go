// Package logging writes diagnostic logs to a file under the state directory
// so the terminal stays free for the study display.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// FileName is the log file's name inside the state directory.
const FileName = "kanikani.log"

// Logger is a logrus logger bound to an open log file.
type Logger struct {
	*logrus.Logger
	file *os.File
}

// New creates (or reuses) the log file in stateDir. An unknown level falls
// back to info and is reported in the log itself.
func New(stateDir, level string) (*Logger, error) {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	path := filepath.Join(stateDir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}

	base := logrus.New()
	base.SetOutput(f)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	parsed, parseErr := logrus.ParseLevel(strings.TrimSpace(level))
	if parseErr != nil {
		parsed = logrus.InfoLevel
	}
	base.SetLevel(parsed)
	if parseErr != nil && strings.TrimSpace(level) != "" {
		base.WithField("level", level).Warn("unknown log level, using info")
	}
	return &Logger{Logger: base, file: f}, nil
}

// Path returns the file backing the logger.
func (l *Logger) Path() string {
	if l == nil || l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
