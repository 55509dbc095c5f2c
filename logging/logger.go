// Package logging provides the process-wide log handle shared by all workers.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the log sinks
type Options struct {
	Verbose bool      // Also write to Stdout
	Stdout  io.Writer // Defaults to os.Stdout
	File    string    // Log file path, empty for none

	// Rotation settings for File
	MaxSize    int // Megabytes
	MaxBackups int
	MaxAge     int // Days
	Compress   bool
}

// Logger serializes writes from concurrent workers onto a zap logger
type Logger struct {
	mu    sync.Mutex
	sugar *zap.SugaredLogger
	file  *lumberjack.Logger
}

// EncoderConfig renders lines as "[2006-01-02 15:04:05] LEVEL message"
func EncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeTime:       zapcore.TimeEncoderOfLayout("[2006-01-02 15:04:05]"),
		EncodeDuration:   zapcore.SecondsDurationEncoder,
		ConsoleSeparator: " ",
	}
}

// New builds a logger writing debug and above to the sinks in opts.
// With neither Verbose nor File set, everything is dropped.
func New(opts Options) (*Logger, error) {
	encoder := zapcore.NewConsoleEncoder(EncoderConfig())

	var cores []zapcore.Core
	if opts.Verbose {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(out), zapcore.DebugLevel))
	}

	var file *lumberjack.Logger
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, err
		}
		file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSize,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAge,
			Compress:   opts.Compress,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(file), zapcore.DebugLevel))
	}

	l := NewWithCore(zapcore.NewTee(cores...))
	l.file = file
	return l, nil
}

// NewWithCore wraps an existing zap core, e.g. an observer in tests
func NewWithCore(core zapcore.Core) *Logger {
	return &Logger{sugar: zap.New(core).Sugar()}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return NewWithCore(zapcore.NewNopCore())
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sugar.Debugf(format, args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sugar.Infof(format, args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sugar.Warnf(format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sugar.Errorf(format, args...)
}

// Close flushes buffered entries and closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.sugar.Sync()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}
