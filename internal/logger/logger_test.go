package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level)
			if log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	ctx := WithRunID(context.Background(), "01HZX")
	log := New("info")

	// These should not panic
	log.Debug(ctx, "debug message")
	log.Info(ctx, "info message")
	log.Warn(ctx, "warn message")
	log.Error(ctx, "error message")

	log.Info(ctx, "formatted message: %s %d", "test", 123)
	NewNop().Error(ctx, "discarded")
}

func TestShouldLog(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logLevel    zapcore.Level
		shouldLog   bool
	}{
		{"debug logs at debug level", "debug", zapcore.DebugLevel, true},
		{"info logs at debug level", "debug", zapcore.InfoLevel, true},
		{"debug doesn't log at info level", "info", zapcore.DebugLevel, false},
		{"info logs at info level", "info", zapcore.InfoLevel, true},
		{"error always logs", "debug", zapcore.ErrorLevel, true},
		{"unknown level falls back to info", "verbose", zapcore.DebugLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.configLevel).(*implLogger)
			result := log.shouldLog(tt.logLevel)
			if result != tt.shouldLog {
				t.Errorf("shouldLog() = %v, want %v", result, tt.shouldLog)
			}
		})
	}
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cheercast.log")
	log := NewWithOptions("info", Options{Format: "json", File: path})

	log.Info(context.Background(), "written to %s", "file")
	_ = log.(*implLogger).sugar.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}
