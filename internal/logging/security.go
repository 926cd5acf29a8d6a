// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

const (
	securityLevelInfo    = "INFO"
	securityLevelWarning = "WARN"
)

// SecurityLogger writes security events in a fixed shape so they can be
// filtered out of the application log stream
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) event(level, event, description string, fields ...zap.Field) {
	fields = append(
		fields,
		zap.String("type", "security"),
		zap.String("level", level),
		zap.String("event", event),
		zap.String("description", description),
	)

	s.l.Info(description, fields...)
}

func (s *SecurityLogger) SystemStartup() {
	s.event(securityLevelInfo, "sys_startup", "system startup")
}

func (s *SecurityLogger) SystemShutdown() {
	s.event(securityLevelInfo, "sys_shutdown", "system shutdown")
}

func (s *SecurityLogger) AuthnSuccess(userID, method string) {
	s.event(
		securityLevelInfo,
		"authn_login_success:"+userID,
		"user authenticated",
		zap.String("user_id", userID),
		zap.String("method", method),
	)
}

func (s *SecurityLogger) AuthnFailure(reason, method string) {
	s.event(
		securityLevelWarning,
		"authn_login_fail",
		"authentication failed",
		zap.String("reason", reason),
		zap.String("method", method),
	)
}

func newSecurityLogger(z *zap.Logger) *SecurityLogger {
	return &SecurityLogger{l: z.Named("security")}
}
