package logging

import (
	"context"
	"log/slog"
	"os"
)

// HandlerConfig configures the context-aware slog handler.
type HandlerConfig struct {
	Service       ServiceInfo
	Environment   Environment
	DefaultModule Module
	GCPProjectID  string
	Level         slog.Leveler
}

// contextHandler decorates an inner handler with service identity, the
// module and request ID carried by the context, and (on GCP) trace
// correlation attributes.
type contextHandler struct {
	inner slog.Handler
	cfg   HandlerConfig
}

func NewHandler(cfg HandlerConfig) slog.Handler {
	level := cfg.Level
	if level == nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var inner slog.Handler
	if cfg.Environment == EnvDev {
		inner = slog.NewTextHandler(os.Stdout, opts)
	} else {
		opts.ReplaceAttr = replaceAttrForStructured
		inner = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &contextHandler{inner: inner, cfg: cfg}
}

func NewLogger(cfg HandlerConfig) *slog.Logger {
	return slog.New(NewHandler(cfg))
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, record slog.Record) error {
	module := ModuleFromContext(ctx)
	if module == "" {
		module = h.cfg.DefaultModule
	}
	if module != "" {
		record.AddAttrs(slog.String("module", string(module)))
	}

	if requestID := RequestIDFromContext(ctx); requestID != "" {
		record.AddAttrs(slog.String("request_id", requestID))
	}

	if h.cfg.Service.Name != "" {
		record.AddAttrs(
			slog.String("service", h.cfg.Service.Name),
			slog.String("version", h.cfg.Service.Version),
		)
	}
	if h.cfg.Service.Revision != "" {
		record.AddAttrs(slog.String("revision", h.cfg.Service.Revision))
	}

	record.AddAttrs(gcpTraceAttrs(ctx, h.cfg.GCPProjectID)...)

	return h.inner.Handle(ctx, record)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{inner: h.inner.WithAttrs(attrs), cfg: h.cfg}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{inner: h.inner.WithGroup(name), cfg: h.cfg}
}

// replaceAttrForStructured maps slog's default keys to the field names
// structured log collectors expect.
func replaceAttrForStructured(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.LevelKey:
		a.Key = "severity"
		if level, ok := a.Value.Any().(slog.Level); ok && level == slog.LevelWarn {
			a.Value = slog.StringValue("WARNING")
		}
	case slog.MessageKey:
		a.Key = "message"
	case slog.TimeKey:
		a.Key = "timestamp"
	}
	return a
}
