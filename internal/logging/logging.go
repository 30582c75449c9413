// Package logging provides the controller's zap logger and the SQLite-backed
// session event log.
package logging

// #region imports
import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// #endregion

// #region logger

// New builds the root logger: a console core plus a file core under logsDir
// with a timestamped filename. logsDir may be empty to log to console only.
func New(logsDir string) (*zap.Logger, error) {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), zap.DebugLevel),
	}

	if logsDir != "" {
		if err := os.MkdirAll(logsDir, 0o755); err != nil {
			return nil, fmt.Errorf("create logs dir: %w", err)
		}
		name := time.Now().Format("output_060102_150405.log")
		f, err := os.OpenFile(filepath.Join(logsDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(f), zap.DebugLevel))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

// Nop returns a no-op logger for tests and optional wiring.
func Nop() *zap.Logger { return zap.NewNop() }

// #endregion
