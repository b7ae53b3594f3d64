// Package logger builds the logrus logger used by the odatagen command.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logging configuration.
type Config struct {
	Level      string
	File       string
	MaxSize    int // megabytes
	MaxBackups int // number of files
	MaxAge     int // days
	Compress   bool
}

// Logger is a logrus logger that may own a rotating log file.
type Logger struct {
	*logrus.Logger
	file *lumberjack.Logger
}

// New creates a logger writing text to out and, when c.File is set, to a
// rotating log file as well. An unknown level falls back to info.
func New(c Config, out io.Writer) (*Logger, error) {
	if out == nil {
		out = os.Stderr
	}
	l := &Logger{Logger: logrus.New()}

	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if c.File == "" {
		l.SetOutput(out)
	} else {
		if err := os.MkdirAll(filepath.Dir(c.File), 0o755); err != nil {
			return nil, err
		}
		l.file = &lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    c.MaxSize,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAge,
			Compress:   c.Compress,
		}
		l.SetOutput(io.MultiWriter(out, l.file))
	}
	if c.Level != "" && err != nil {
		l.WithField("level", c.Level).Warn("unknown log level, using info")
	}
	return l, nil
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
