package config

import (
	"os"
	"strconv"
)

type Config struct {
	ProjectTrackingURL string
	TasksDatabaseDSN   string
	Port               string
	PushQueue          PushQueueConfig
	Redis              *RedisConfig
	Alert              *AlertConfig
}

type PushQueueConfig struct {
	SitetrackPushURL string
	QueueName        string

	GCloudProjectID  string
	GCloudLocationID string
	GCloudQueueID    string
	GCloudTargetURL  string

	MaxRetries int
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	queueName := os.Getenv("PUSH_QUEUE_NAME")
	if queueName == "" {
		queueName = "default"
	}

	maxRetries := 3
	if v := os.Getenv("PUSH_QUEUE_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		ProjectTrackingURL: os.Getenv("PROJECT_TRACKING_URL"),
		TasksDatabaseDSN:   os.Getenv("TASKS_DATABASE_DSN"),
		Port:               port,
		PushQueue: PushQueueConfig{
			SitetrackPushURL: os.Getenv("SITETRACK_PUSH_URL"),
			QueueName:        queueName,

			GCloudProjectID:  os.Getenv("GCLOUD_PROJECT_ID"),
			GCloudLocationID: os.Getenv("GCLOUD_LOCATION_ID"),
			GCloudQueueID:    os.Getenv("GCLOUD_QUEUE_ID"),
			GCloudTargetURL:  os.Getenv("GCLOUD_TARGET_URL"),

			MaxRetries: maxRetries,
		},
		Redis: redisConfig,
		Alert: LoadAlertConfig(),
	}, nil
}
