package logging

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Module identifies the logical subsystem emitting a log record.
type Module string

// Environment selects the log output format.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// ServiceInfo carries service identity attached to every log record.
type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	moduleKey    contextKey = "module"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ValidateAndExtractRequestID returns the candidate if it is a well-formed
// UUID, otherwise a freshly generated one.
func ValidateAndExtractRequestID(candidate string) string {
	if candidate != "" {
		if _, err := uuid.Parse(candidate); err == nil {
			return candidate
		}
	}
	return uuid.NewString()
}

// ParseLevel maps a LOG_LEVEL string to a slog level, defaulting to Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func WithModule(ctx context.Context, module Module) context.Context {
	return context.WithValue(ctx, moduleKey, module)
}

func ModuleFromContext(ctx context.Context) Module {
	if v, ok := ctx.Value(moduleKey).(Module); ok {
		return v
	}
	return ""
}
