package observability

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/observability/logging"
)

// Config collects everything needed to stand up logging, tracing and
// metrics for the process.
type Config struct {
	ServiceInfo   logging.ServiceInfo
	Environment   logging.Environment
	GCPProjectID  string
	SamplingRate  float64
	DefaultModule logging.Module
	LogLevel      slog.Leveler
}

// Resources holds the initialized observability stack and its shutdown
// hooks.
type Resources struct {
	logger    *slog.Logger
	shutdowns []func(context.Context) error
}

func Init(ctx context.Context, cfg Config) (*Resources, error) {
	res, err := sdkresource.New(ctx,
		sdkresource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceInfo.Name),
			semconv.ServiceVersionKey.String(cfg.ServiceInfo.Version),
			semconv.DeploymentEnvironmentKey.String(string(cfg.Environment)),
		),
	)
	if err != nil {
		return nil, err
	}

	resources := &Resources{}

	traceShutdown, err := initTraceProvider(ctx, cfg, res)
	if err != nil {
		return nil, err
	}
	if traceShutdown != nil {
		resources.shutdowns = append(resources.shutdowns, traceShutdown)
	}

	meterShutdown, err := initMeterProvider(ctx, cfg, res)
	if err != nil {
		return nil, err
	}
	if meterShutdown != nil {
		resources.shutdowns = append(resources.shutdowns, meterShutdown)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	resources.logger = logging.NewLogger(logging.HandlerConfig{
		Service:       cfg.ServiceInfo,
		Environment:   cfg.Environment,
		DefaultModule: cfg.DefaultModule,
		GCPProjectID:  cfg.GCPProjectID,
		Level:         cfg.LogLevel,
	})

	return resources, nil
}

func (r *Resources) Logger() *slog.Logger {
	return r.logger
}

func (r *Resources) Shutdown(ctx context.Context) error {
	var errs []error
	for _, shutdown := range r.shutdowns {
		if err := shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
