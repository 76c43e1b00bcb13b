package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logDir      = "logs"
	logFileName = "segmole.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging opens logs/segmole.log and returns a JSON logger writing to it
// Without debug both the zap logger and the standard logger discard everything
// The terminal belongs to the board so nothing is ever written to stdout or stderr
func setupLogging(debug bool) (*zap.Logger, *os.File) {
	if !debug {
		log.SetOutput(io.Discard)
		return zap.NewNop(), nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return zap.NewNop(), nil
	}

	logPath := filepath.Join(logDir, logFileName)
	rotateIfLarge(logPath)

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return zap.NewNop(), nil
	}
	log.SetOutput(f)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), zapcore.DebugLevel)
	return zap.New(core, zap.AddCaller()), f
}

// rotateIfLarge moves an oversized log aside under a timestamped name
func rotateIfLarge(path string) {
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("stat log: %v", err)
		}
		return
	}
	if info.Size() <= maxLogSize {
		return
	}
	rotated := filepath.Join(logDir, fmt.Sprintf("segmole-%s.log", time.Now().Format("20060102-150405")))
	_ = os.Rename(path, rotated)
}
