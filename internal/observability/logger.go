package observability

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName is attached to every log line and the health payload.
const ServiceName = "weather-forecast-service"

// ParseLevel maps a LOG_LEVEL value onto a zap level, case-insensitively. Empty input is INFO.
// ok is false when the value is unrecognised and INFO was substituted.
func ParseLevel(s string) (level zapcore.Level, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return zapcore.InfoLevel, true
	}
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel, false
	}
	return level, true
}

// NewLogger builds the production JSON logger writing to stderr.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, ok := ParseLevel(level)

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.InitialFields = map[string]interface{}{"service": ServiceName}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	if !ok {
		logger.Warn("unrecognised log level, using INFO", zap.String("log_level", level))
	}
	return logger, nil
}
