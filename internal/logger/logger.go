// Package logger holds the zap logger shared by the whole module.
//
// Library packages only log at debug level, through Debug or a Named child.
// Until a program installs a logger everything is discarded, so building
// meshes and planning paths is silent by default.
package logger

import (
	"os"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var current atomic.Pointer[zap.Logger]

func init() {
	current.Store(zap.NewNop())
}

var levels = map[string]zapcore.Level{
	"":        zapcore.InfoLevel,
	"debug":   zapcore.DebugLevel,
	"info":    zapcore.InfoLevel,
	"warn":    zapcore.WarnLevel,
	"warning": zapcore.WarnLevel,
	"error":   zapcore.ErrorLevel,
}

// ParseLevel accepts debug, info, warn or error, in any case. An empty name is
// info.
func ParseLevel(name string) (zapcore.Level, error) {
	level, ok := levels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return zapcore.InfoLevel, errors.Errorf("unknown log level %q (want debug, info, warn or error)", name)
	}
	return level, nil
}

// Rotation limits for the log file.
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultRotation keeps three compressed 20MB backups for a week.
func DefaultRotation() Rotation {
	return Rotation{MaxSizeMB: 20, MaxBackups: 3, MaxAgeDays: 7, Compress: true}
}

// Options says where log entries go and which are kept.
type Options struct {
	Level string
	// Human readable output, skipped when nil
	Console zapcore.WriteSyncer
	// JSON output with rotation, skipped when empty
	File string
	// Zero means DefaultRotation
	Rotation Rotation
}

// New builds a logger without installing it. With no outputs it discards
// everything.
func New(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var cores []zapcore.Core
	if opts.Console != nil {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoding()), opts.Console, level))
	}
	if opts.File != "" {
		rotation := opts.Rotation
		if rotation == (Rotation{}) {
			rotation = DefaultRotation()
		}
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    rotation.MaxSizeMB,
			MaxBackups: rotation.MaxBackups,
			MaxAge:     rotation.MaxAgeDays,
			Compress:   rotation.Compress,
			LocalTime:  true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoding()), zapcore.AddSync(file), level))
	}
	if len(cores) == 0 {
		return zap.NewNop(), nil
	}
	// Skip the package level helpers when reporting the caller
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)), nil
}

func consoleEncoding() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.ConsoleSeparator = " "
	return cfg
}

func fileEncoding() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

// Init installs a logger writing to stderr, keeping stdout for command output,
// and to logFile as well when it's set.
func Init(level, logFile string) error {
	l, err := New(Options{Level: level, Console: zapcore.Lock(os.Stderr), File: logFile})
	if err != nil {
		return err
	}
	Install(l)
	return nil
}

// Install replaces the package logger. nil goes back to discarding.
func Install(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	current.Store(l)
}

// Named returns a child logger tagged with the component name, for callers
// that log directly rather than through the helpers.
func Named(component string) *zap.Logger {
	return current.Load().Named(component).WithOptions(zap.AddCallerSkip(-1))
}

// Sync flushes buffered entries.
func Sync() {
	_ = current.Load().Sync()
}

func Debug(msg string, fields ...zap.Field) {
	current.Load().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	current.Load().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	current.Load().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	current.Load().Error(msg, fields...)
}
