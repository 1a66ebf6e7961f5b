package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventLoginFailed        EventType = "login_failed"
	EventLoginBlocked       EventType = "login_blocked"
	EventBlockCreated       EventType = "block_created"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
)

// SecurityEvent is one audit record. SubjectValue must already be masked.
type SecurityEvent struct {
	Event        EventType
	SubjectType  string // "login", "ip"
	SubjectValue string
	IP           string
	RequestID    string
	Details      map[string]any
}

// SecurityLogger writes security events to a dedicated zap logger, separate
// from the application log so they can be shipped and retained on their own.
type SecurityLogger struct {
	zapLogger   *zap.Logger
	serviceName string
}

// NewSecurityLogger wraps zl. A nil zl discards events.
func NewSecurityLogger(zl *zap.Logger, serviceName string) *SecurityLogger {
	if zl == nil {
		zl = zap.NewNop()
	}
	return &SecurityLogger{zapLogger: zl, serviceName: serviceName}
}

// NewProductionSecurityLogger logs JSON to stdout with ISO8601 timestamps.
func NewProductionSecurityLogger(serviceName string) *SecurityLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return NewSecurityLogger(logger, serviceName)
}

func levelFor(event EventType) zapcore.Level {
	switch event {
	case EventLoginBlocked, EventBlockCreated:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// Log logs a security event
func (sl *SecurityLogger) Log(ctx context.Context, event SecurityEvent) {
	if sl == nil {
		return
	}
	fields := []zap.Field{
		zap.String("service", sl.serviceName),
		zap.String("event", string(event.Event)),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}
	sl.zapLogger.Log(levelFor(event.Event), string(event.Event), fields...)
}

func (sl *SecurityLogger) LogLoginFailed(ctx context.Context, login string, attempts int) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginFailed,
		SubjectType:  "login",
		SubjectValue: MaskLogin(login),
		Details:      map[string]any{"attempts": attempts},
	})
}

func (sl *SecurityLogger) LogLoginBlocked(ctx context.Context, login string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginBlocked,
		SubjectType:  "login",
		SubjectValue: MaskLogin(login),
	})
}

func (sl *SecurityLogger) LogBlockCreated(ctx context.Context, login string, durationMinutes int) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventBlockCreated,
		SubjectType:  "login",
		SubjectValue: MaskLogin(login),
		Details:      map[string]any{"duration_minutes": durationMinutes},
	})
}

func (sl *SecurityLogger) LogRateLimitTriggered(ctx context.Context, ip, requestID, endpoint string) {
	sl.Log(ctx, SecurityEvent{
		Event:     EventRateLimitTriggered,
		IP:        ip,
		RequestID: requestID,
		Details:   map[string]any{"endpoint": endpoint},
	})
}

// Sync flushes buffered entries.
func (sl *SecurityLogger) Sync() error {
	if sl == nil {
		return nil
	}
	return sl.zapLogger.Sync()
}

// MaskLogin keeps the first and last character: "anna" -> "a**a".
func MaskLogin(login string) string {
	r := []rune(login)
	switch {
	case len(r) == 0:
		return ""
	case len(r) <= 2:
		return strings.Repeat("*", len(r))
	}
	return string(r[0]) + strings.Repeat("*", len(r)-2) + string(r[len(r)-1])
}

// HashValue is a stable pseudonym for correlating events without storing the value.
func HashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:8])
}
