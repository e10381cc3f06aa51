// Package logging provides the leveled logger used by the CLI and pipeline.
// It wraps logrus: console output goes to stderr (colored per the color
// mode) and an optional append-only log file receives the same entries as
// plain text.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/backmassage/seqpath/internal/config"
	"github.com/backmassage/seqpath/internal/term"
)

const timestampFormat = "2006-01-02 15:04:05"

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	log  *logrus.Logger
	hook *fileHook
}

// NewLogger logs to stderr. Call Close() when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	return NewWithOutput(cfg, os.Stderr)
}

// NewWithOutput logs to out. Colors are only considered when out is a file.
func NewWithOutput(cfg *config.Config, out io.Writer) (*Logger, error) {
	f, _ := out.(*os.File)
	color := term.Configure(cfg.ColorMode, f)

	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		ForceColors:     color,
		DisableColors:   !color,
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
	})
	l.SetLevel(logrus.InfoLevel)
	if cfg.Verbose {
		l.SetLevel(logrus.DebugLevel)
	}

	lg := &Logger{log: l}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		lg.hook = &fileHook{
			file: file,
			formatter: &logrus.TextFormatter{
				DisableColors:   true,
				FullTimestamp:   true,
				TimestampFormat: timestampFormat,
			},
		}
		l.AddHook(lg.hook)
	}
	return lg, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l.hook == nil {
		return nil
	}
	return l.hook.close()
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log.Infof(format, args...)
}

// Success logs at INFO level tagged result=ok.
func (l *Logger) Success(format string, args ...interface{}) {
	l.log.WithField("result", "ok").Infof(format, args...)
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log.Warnf(format, args...)
}

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log.Errorf(format, args...)
}

// Debug logs at DEBUG level; dropped unless the config was verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log.Debugf(format, args...)
}

// WithPath returns an entry carrying a path field, for per-file messages.
func (l *Logger) WithPath(path string) *logrus.Entry {
	return l.log.WithField("path", path)
}

// fileHook writes every entry to the log file without colors.
type fileHook struct {
	mu        sync.Mutex
	file      *os.File
	formatter logrus.Formatter
}

func (h *fileHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *fileHook) Fire(e *logrus.Entry) error {
	b, err := h.formatter.Format(e)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.file == nil {
		return nil
	}
	if _, err := h.file.Write(b); err != nil {
		return fmt.Errorf("write log file: %w", err)
	}
	return nil
}

func (h *fileHook) close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.file == nil {
		return nil
	}
	err := h.file.Close()
	h.file = nil
	return err
}
