// Package logging builds the proxy's file-backed zap logger. The proxy's
// stdout is the LSP wire; nothing in this package may write there. Logs
// go to <tmpdir>/lspdock_<executable>.log, append-only for the session.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Path returns the session log file path for the given server executable
// name, rooted at the platform temp directory.
func Path(executable string) string {
	name := filepath.Base(executable)
	if name == "" || name == "." {
		name = "server"
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("lspdock_%s.log", name))
}

// New opens (creating if needed, appending otherwise) the log file at path and builds a zap
// logger writing exclusively to it, at the given level.
func New(path string, level zapcore.Level) (*zap.Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(f), level)
	logger := zap.New(core)

	cleanup := func() {
		_ = logger.Sync()
		_ = f.Close()
	}
	return logger, cleanup, nil
}

// ParseLevel maps the proxy's CLI/config log-level vocabulary
// (trace|debug|info|warning|error) onto zap's levels. zap has no "trace"
// level; it is treated as debug, the most verbose zap offers.
func ParseLevel(s string) (zapcore.Level, error) {
	switch s {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "trace", "debug":
		return zapcore.DebugLevel, nil
	case "warning", "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unrecognized log level %q", s)
	}
}
