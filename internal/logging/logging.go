// Package logging wraps a single logrus.Logger shared by the event loop,
// the server and the CLI's --log-level flag. Per spec §7, logging is a
// side channel: nothing here ever changes control flow, and a logging
// call's own failure is never escalated.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var std = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		DisableColors: false,
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Default returns the process-wide logger.
func Default() *logrus.Logger {
	return std
}

// SetLevel parses level ("debug", "info", "warn", "error") and applies it
// to the default logger; an unrecognized level is a no-op, since a bad
// --log-level flag should not prevent the server from starting.
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return
	}
	std.SetLevel(lvl)
}
