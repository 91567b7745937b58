package slogx

import (
	"fmt"
	"log/slog"
	"time"
)

// KeyLoggerName is the attribute key that names the component emitting a record.
const KeyLoggerName = "logger"

// Error returns an "error" attribute holding err's message.
func Error(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// Stringer returns an attribute holding value.String().
func Stringer(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}

// LoggerName returns the attribute used to tag a component logger, e.g.
//
//	log := slog.Default().With(slogx.LoggerName("docbot.search"))
func LoggerName(name string) slog.Attr {
	return slog.String(KeyLoggerName, name)
}

// Elapsed returns an "elapsed" attribute with the time passed since start.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}
