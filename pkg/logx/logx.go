// Package logx is the process-wide logger. It wraps zerolog behind the
// printf-style helpers used across the code base.
package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stderr, true)
)

func newLogger(w io.Writer, console bool) zerolog.Logger {
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// ParseLevel converts a config string into a Level, defaulting to info
func ParseLevel(s string) Level {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelDebug:
		return LevelDebug
	case LevelWarn:
		return LevelWarn
	case LevelError:
		return LevelError
	default:
		return LevelInfo
	}
}

// SetLevel changes the minimum level that is written
func SetLevel(l Level) {
	zl, err := zerolog.ParseLevel(string(l))
	if err != nil {
		zl = zerolog.InfoLevel
	}

	mu.Lock()
	logger = logger.Level(zl)
	mu.Unlock()
}

// SetOutput replaces the sink. JSON output is used unless console is set.
func SetOutput(w io.Writer, console bool) {
	mu.Lock()
	lvl := logger.GetLevel()
	logger = newLogger(w, console).Level(lvl)
	mu.Unlock()
}

// Logger returns the underlying zerolog logger for structured fields
func Logger() *zerolog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	return &l
}

func Debug(msg string) { Logger().Debug().Msg(msg) }
func Info(msg string)  { Logger().Info().Msg(msg) }
func Warn(msg string)  { Logger().Warn().Msg(msg) }
func Error(msg string) { Logger().Error().Msg(msg) }

func Debugf(format string, args ...any) { Logger().Debug().Msg(fmt.Sprintf(format, args...)) }
func Infof(format string, args ...any)  { Logger().Info().Msg(fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { Logger().Warn().Msg(fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { Logger().Error().Msg(fmt.Sprintf(format, args...)) }

// Fatalf logs and exits the process
func Fatalf(format string, args ...any) { Logger().Fatal().Msg(fmt.Sprintf(format, args...)) }
