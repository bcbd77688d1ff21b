// Package logging configures the logrus loggers shared by the binaries.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
)

// Setup configures log from c: debug level in development unless a level is
// set, colored text on out, and a rotating JSON file when c.Log.File is set.
// The engine logger follows the same settings.
func Setup(log *logrus.Logger, out io.Writer, c *config.Config) error {
	level := logrus.InfoLevel
	if c.Development() {
		level = logrus.DebugLevel
	}
	if c.Log.Level != "" {
		var err error
		if level, err = logrus.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
	}

	for _, l := range []*logrus.Logger{log, mines.Log} {
		l.SetOutput(out)
		l.SetLevel(level)
		l.SetFormatter(&logrus.TextFormatter{ForceColors: c.Development()})
	}

	if c.Log.File == "" {
		return nil
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   c.Log.File,
		MaxSize:    c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAgeDays,
		Level:      level,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return fmt.Errorf("unable to open log file %s: %w", c.Log.File, err)
	}
	log.AddHook(hook)
	mines.Log.AddHook(hook)

	return nil
}
