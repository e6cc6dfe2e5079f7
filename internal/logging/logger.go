// Package logging builds airshare's diagnostic zap logger.
//
// The terminal belongs to the TUI, so diagnostics go to a file. The
// user-facing activity log lives in package logbuf and is unrelated.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/five82/airshare/internal/config"
)

const serviceName = "airshare"

// New opens cfg.LogFile and returns a logger writing to it, plus a close
// function that flushes and closes the file. A log level of "off" or an empty
// log file yields a no-op logger.
func New(cfg config.Config, version string) (*zap.Logger, func() error, error) {
	if isOff(cfg.LogLevel) || strings.TrimSpace(cfg.LogFile) == "" {
		return zap.NewNop(), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := NewWithWriter(file, cfg.LogLevel, cfg.LogFormat, version)
	closeFn := func() error {
		_ = logger.Sync()
		return file.Close()
	}
	return logger, closeFn, nil
}

// NewWithWriter builds a logger writing to w.
//
// Format "console" selects the human-readable encoder; anything else is JSON.
// Every entry carries the service and version fields.
func NewWithWriter(w io.Writer, level, format, version string) *zap.Logger {
	if isOff(level) {
		return zap.NewNop()
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "console", "text":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	default:
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), parseLevel(level))
	return zap.New(core).With(
		zap.String("service", serviceName),
		zap.String("version", version),
	)
}

// parseLevel converts a config string to a zap level.
//
// Supported levels: debug, info, warn, error. Defaults to info if unrecognised.
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

func isOff(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "off", "none", "disabled":
		return true
	}
	return false
}
