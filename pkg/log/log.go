// Package log provides structured logging for combustion on top of zerolog.
//
// Components obtain a named logger and log with key/value pairs:
//
//	logger := log.GetLoggerWithName("service.trainer")
//	logger.Info("Training started", "samples", len(rows))
//
// The process-wide level is set once with SetupLogger.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	scigoErrors "github.com/ezoic/combustion/pkg/errors"
)

// Level is a logging level.
type Level = zerolog.Level

// Logger is the logging interface used throughout the module.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

// LoggerProvider creates named loggers.
type LoggerProvider interface {
	GetLogger() Logger
	GetLoggerWithName(name string) Logger
}

// ToLogLevel parses a level name, defaulting to info.
func ToLogLevel(level string) Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

type zerologProvider struct {
	base zerolog.Logger
}

// NewZerologProvider returns a provider writing console output to stderr.
func NewZerologProvider(level Level) LoggerProvider {
	return NewZerologProviderWithWriter(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}, level)
}

// NewZerologProviderWithWriter returns a provider writing JSON lines to w.
func NewZerologProviderWithWriter(w io.Writer, level Level) LoggerProvider {
	return &zerologProvider{base: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

func (p *zerologProvider) GetLogger() Logger {
	return &zerologLogger{l: p.base}
}

func (p *zerologProvider) GetLoggerWithName(name string) Logger {
	return &zerologLogger{l: p.base.With().Str("component", name).Logger()}
}

type zerologLogger struct {
	l zerolog.Logger
}

func (z *zerologLogger) Debug(msg string, fields ...interface{}) {
	z.l.Debug().Fields(fields).Msg(msg)
}

func (z *zerologLogger) Info(msg string, fields ...interface{}) {
	z.l.Info().Fields(fields).Msg(msg)
}

func (z *zerologLogger) Warn(msg string, fields ...interface{}) {
	z.l.Warn().Fields(fields).Msg(msg)
}

func (z *zerologLogger) Error(msg string, fields ...interface{}) {
	z.l.Error().Fields(fields).Msg(msg)
}

func (z *zerologLogger) With(fields ...interface{}) Logger {
	return &zerologLogger{l: z.l.With().Fields(fields).Logger()}
}

var (
	mu       sync.RWMutex
	provider LoggerProvider = NewZerologProvider(zerolog.InfoLevel)
)

// SetupLogger installs the global provider at the given level and routes
// pkg/errors warnings to it.
func SetupLogger(level string) {
	SetProvider(NewZerologProvider(ToLogLevel(level)))
}

// SetProvider replaces the global provider.
func SetProvider(p LoggerProvider) {
	mu.Lock()
	provider = p
	mu.Unlock()

	warnings := p.GetLoggerWithName("warnings")
	scigoErrors.WarningHandler = func(err error) {
		warnings.Warn(err.Error())
	}
}

// GetLogger returns the global logger.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return provider.GetLogger()
}

// GetLoggerWithName returns a global logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	mu.RLock()
	defer mu.RUnlock()
	return provider.GetLoggerWithName(name)
}

// LogError logs err with its stack trace at error level.
func LogError(err error, msg string) {
	if err == nil {
		return
	}
	GetLogger().Error(msg, "error", err.Error(), "detail", fmt.Sprintf("%+v", err))
}
