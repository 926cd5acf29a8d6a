// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	*zap.SugaredLogger

	security *SecurityLogger
}

func (l *Logger) Security() SecurityLoggerInterface {
	return l.security
}

// Sync flushes both the application and the security loggers
func (l *Logger) Sync() error {
	_ = l.security.l.Sync()
	return l.SugaredLogger.Sync()
}

// ParseLevel maps a LOG_LEVEL value to a zap level, unknown values map to error
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.ErrorLevel
	}
}

// NewLogger creates a JSON production logger writing to stdout at the given level,
// unknown levels fall back to error
func NewLogger(l string) *Logger {
	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(ParseLevel(l))
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	c.OutputPaths = []string{"stdout"}

	z, err := c.Build()
	if err != nil {
		panic(err)
	}

	return FromZap(z)
}

// FromZap wraps an already built zap logger
func FromZap(z *zap.Logger) *Logger {
	return &Logger{
		SugaredLogger: z.Sugar(),
		security:      newSecurityLogger(z),
	}
}
