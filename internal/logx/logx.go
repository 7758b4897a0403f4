// Package logx provides structured logging functionality
package logx

import (
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger to provide a consistent interface.
// A scoped Logger resolves the global core on every call, so scopes created in
// package vars pick up a later Init.
type Logger struct {
	zap   *zap.Logger
	sugar *zap.SugaredLogger
	scope string
}

var (
	mu           sync.RWMutex
	globalLogger *Logger
)

func init() {
	l, err := New()
	if err != nil {
		panic(err)
	}
	globalLogger = l
}

// IsLocalDev checks if the environment is local development
func IsLocalDev(appEnv string) bool {
	return appEnv == "local" || appEnv == "dev" || appEnv == "development"
}

// New creates a logger using APP_ENV to pick the default level.
func New() (*Logger, error) {
	config := getLoggerConfig()

	if IsLocalDev(os.Getenv("APP_ENV")) {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{zap: zapLogger, sugar: zapLogger.Sugar()}, nil
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
}

func getLoggerConfig() zap.Config {
	config := zap.NewProductionConfig()

	config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	config.Development = false
	config.DisableCaller = false
	config.DisableStacktrace = false
	config.Sampling = nil

	config.EncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	config.Encoding = "console"

	return config
}

// Init (re)configures the global logger. Safe to call again on config reload.
func Init(level, format string) {
	config := getLoggerConfig()

	switch strings.ToLower(format) {
	case "json":
		config.Encoding = "json"
		config.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	default:
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))

	zapLogger, err := config.Build()
	if err != nil {
		panic(err)
	}

	mu.Lock()
	globalLogger = &Logger{zap: zapLogger, sugar: zapLogger.Sugar()}
	mu.Unlock()
}

// GetScope returns a logger named after a package or component.
func GetScope(scope string) *Logger {
	return &Logger{scope: scope}
}

func global() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// Sync flushes the global logger.
func Sync() {
	if g := global(); g != nil && g.zap != nil {
		_ = g.zap.Sync()
	}
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *Logger) resolve() *zap.Logger {
	if l.scope == "" && l.zap != nil {
		return l.zap
	}
	g := global()
	if g == nil || g.zap == nil {
		return zap.NewNop()
	}
	return g.zap.Named(l.scope)
}

// Zap returns the underlying zap logger for structured logging
func (l *Logger) Zap() *zap.Logger {
	return l.resolve()
}

// Sugar returns the sugar logger for key-value style logging
func (l *Logger) Sugar() *zap.SugaredLogger {
	if l.scope == "" && l.sugar != nil {
		return l.sugar
	}
	return l.resolve().Sugar()
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...zap.Field) *zap.Logger {
	return l.resolve().With(fields...)
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.resolve().Debug(msg, fields...) }

func (l *Logger) Info(msg string, fields ...zap.Field) { l.resolve().Info(msg, fields...) }

func (l *Logger) Warn(msg string, fields ...zap.Field) { l.resolve().Warn(msg, fields...) }

func (l *Logger) Error(msg string, fields ...zap.Field) { l.resolve().Error(msg, fields...) }

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(msg string, fields ...zap.Field) { l.resolve().Fatal(msg, fields...) }
