package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	logger, logFile := setupLogging(false)
	if logFile != nil {
		t.Error("Expected nil log file when debug=false")
		logFile.Close()
	}
	if logger == nil {
		t.Fatal("Expected a no-op logger, got nil")
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Expected disabled logger when debug=false")
	}

	if output := log.Writer(); output != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", output)
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	defer os.RemoveAll(logDir)

	logger, logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file when debug=true")
	}
	defer logFile.Close()

	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Error("Expected logs directory to be created")
	}

	logPath := filepath.Join(logDir, logFileName)
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Error("Expected log file to be created")
	}

	logger.Info("test message")
	_ = logger.Sync()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Expected log file to contain content")
	}
	if !strings.Contains(string(data), `"timestamp"`) || !strings.Contains(string(data), `"msg":"test message"`) {
		t.Errorf("Expected JSON entry with timestamp key, got %s", data)
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	defer os.RemoveAll(logDir)

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("Failed to create logs directory: %v", err)
	}

	logPath := filepath.Join(logDir, logFileName)
	largeFile, err := os.Create(logPath)
	if err != nil {
		t.Fatalf("Failed to create large log file: %v", err)
	}
	if _, err := largeFile.Write(make([]byte, maxLogSize+1)); err != nil {
		t.Fatalf("Failed to write to log file: %v", err)
	}
	largeFile.Close()

	_, logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}
	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != logFileName && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
			break
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("Expected new log file to be smaller than %d bytes, got %d", maxLogSize, info.Size())
	}
}

func TestSetupLogging_NoStdoutStderr(t *testing.T) {
	defer os.RemoveAll(logDir)

	_, logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()

	output := log.Writer()
	if output == os.Stdout {
		t.Error("Log output should not be stdout")
	}
	if output == os.Stderr {
		t.Error("Log output should not be stderr")
	}
}
