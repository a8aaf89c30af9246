// Package logger builds the process-wide zap logger. Output goes to a rotated
// file so it never draws over the terminal UI.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	// Stderr, when non-nil, also receives warnings and errors in console format.
	Stderr io.Writer
}

// New returns a JSON logger writing to a lumberjack-rotated file, plus the
// closer for that file.
func New(opts Options) (*zap.Logger, io.Closer, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotator), level),
	}
	if opts.Stderr != nil {
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		consoleCfg.TimeKey = ""
		consoleCfg.CallerKey = ""
		warn := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= zapcore.WarnLevel && level.Enabled(l)
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.AddSync(opts.Stderr), warn))
	}

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return log, rotator, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
