//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/config"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/infra/pushqueue"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/observability"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/observability/logging"
)

func initPushQueue(_ context.Context, cfg *config.Config) (pushqueue.PushQueue, func() error, error) {
	if cfg.PushQueue.SitetrackPushURL == "" {
		slog.Warn("SITETRACK_PUSH_URL not set, push delivery disabled")

		return nil, nil, nil
	}

	pq := pushqueue.NewSitetrackPushClient(
		cfg.PushQueue.SitetrackPushURL,
		cfg.PushQueue.QueueName,
		cfg.PushQueue.MaxRetries,
	)

	slog.Info("push queue initialized",
		slog.String("type", "sitetrack_push"),
		slog.String("url", cfg.PushQueue.SitetrackPushURL),
		slog.String("queue", cfg.PushQueue.QueueName),
	)

	return pq, nil, nil
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "deadline-alerting"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: "",
		},
		Environment:   env,
		GCPProjectID:  "",
		SamplingRate:  1.0,
		DefaultModule: logging.Module("deadline-alerting"),
		LogLevel:      logging.ParseLevel(os.Getenv("LOG_LEVEL")),
	})
	if err != nil {
		return nil, err
	}

	return obs, nil
}
