// Package log provides structured logging for olsfit on top of rs/zerolog.
//
// Library code obtains a named Logger and logs with key/value pairs:
//
//	logger := log.GetLoggerWithName("linear").With(log.ModelNameKey, "LinearRegression")
//	logger.Info("Training started", log.SamplesKey, 100, log.FeaturesKey, 3)
//
// Applications call SetupLogger once at start-up to choose the level and the
// human-readable console output. Until then the global provider logs JSON to
// stderr at warn level so libraries stay quiet by default.
package log

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ezoic/olsfit/pkg/errors"
)

// Common field keys.
const (
	ComponentKey  = "component"
	ModelNameKey  = "model"
	OperationKey  = "operation"
	PhaseKey      = "phase"
	SamplesKey    = "samples"
	FeaturesKey   = "features"
	PredsKey      = "predictions"
	DurationMsKey = "duration_ms"
	ErrorKey      = "error"
)

// Values for OperationKey and PhaseKey.
const (
	OperationFit      = "fit"
	OperationPredict  = "predict"
	OperationEvaluate = "evaluate"
	OperationLoad     = "load"
	OperationSave     = "save"

	PhaseTraining   = "training"
	PhaseInference  = "inference"
	PhaseEvaluation = "evaluation"
	PhaseIO         = "io"
)

// Logger is the structured logger used across olsfit.
// fields are alternating key/value pairs.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

// LoggerProvider hands out loggers that share one output and level.
type LoggerProvider interface {
	GetLogger() Logger
	GetLoggerWithName(name string) Logger
	SetLevel(level zerolog.Level)
	Zerolog() *zerolog.Logger
}

type zerologLogger struct {
	zl zerolog.Logger
}

func (l *zerologLogger) Debug(msg string, fields ...interface{}) {
	l.zl.Debug().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Info(msg string, fields ...interface{}) {
	l.zl.Info().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Warn(msg string, fields ...interface{}) {
	l.zl.Warn().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Error(msg string, fields ...interface{}) {
	l.zl.Error().Fields(fields).Msg(msg)
}

func (l *zerologLogger) With(fields ...interface{}) Logger {
	return &zerologLogger{zl: l.zl.With().Fields(fields).Logger()}
}

type zerologProvider struct {
	mu   sync.RWMutex
	base zerolog.Logger
}

// NewZerologProvider returns a provider writing JSON lines to stderr.
func NewZerologProvider(level zerolog.Level) LoggerProvider {
	return newProvider(os.Stderr, level)
}

func newProvider(w io.Writer, level zerolog.Level) *zerologProvider {
	return &zerologProvider{
		base: zerolog.New(w).Level(level).With().Timestamp().Logger(),
	}
}

func (p *zerologProvider) GetLogger() Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &zerologLogger{zl: p.base}
}

func (p *zerologProvider) GetLoggerWithName(name string) Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &zerologLogger{zl: p.base.With().Str("logger", name).Logger()}
}

func (p *zerologProvider) SetLevel(level zerolog.Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.base = p.base.Level(level)
}

func (p *zerologProvider) Zerolog() *zerolog.Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	l := p.base
	return &l
}

// ToLogLevel parses a level name. Unknown names map to info.
func ToLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

var (
	globalMu       sync.RWMutex
	globalProvider LoggerProvider = NewZerologProvider(zerolog.WarnLevel)
)

func init() {
	errors.SetDefaultWarningHandler(logWarning)
}

// logWarning writes a non-fatal condition reported by errors.Warn through the
// current provider, so it obeys the configured level and output.
func logWarning(err error) {
	GetLoggerWithName("warnings").Warn("olsfit warning", ErrorKey, err.Error())
}

// SetProvider replaces the global provider.
func SetProvider(p LoggerProvider) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalProvider = p
}

func provider() LoggerProvider {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalProvider
}

// SetupLogger installs a console provider on stderr at the given level.
func SetupLogger(level string) {
	cw := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	SetProvider(newProvider(cw, ToLogLevel(level)))
}

// SetOutput installs a JSON provider writing to w at the given level.
func SetOutput(w io.Writer, level string) {
	SetProvider(newProvider(w, ToLogLevel(level)))
}

// GetLogger returns the raw zerolog logger of the global provider.
func GetLogger() *zerolog.Logger {
	return provider().Zerolog()
}

// GetLoggerWithName returns a named Logger from the global provider.
func GetLoggerWithName(name string) Logger {
	return provider().GetLoggerWithName(name)
}

// LogError logs err at error level with optional key/value fields.
func LogError(err error, msg string, fields ...interface{}) {
	provider().Zerolog().Error().Err(err).Fields(fields).Msg(msg)
}
