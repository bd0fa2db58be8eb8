package config

import (
	"os"
	"strconv"
	"time"
)

const (
	panelCooldownMinutesEnv    = "PANEL_COOLDOWN_MINUTES"
	deadlineCooldownMinutesEnv = "DEADLINE_COOLDOWN_MINUTES"
	autoCheckIntervalEnv       = "AUTO_CHECK_INTERVAL_MINUTES"
	panelAlertLimitEnv         = "PANEL_ALERT_LIMIT"
	fetchTimeoutSecondsEnv     = "FETCH_TIMEOUT_SECONDS"
	pushPermissionEnv          = "PUSH_PERMISSION"
	dashboardOriginEnv         = "DASHBOARD_ORIGIN"
	gateStoreBackendEnv        = "GATE_STORE"

	defaultPanelCooldownMinutes    = 30
	defaultDeadlineCooldownMinutes = 5
	defaultAutoCheckMinutes        = 30
	defaultPanelAlertLimit         = 6
	defaultFetchTimeoutSeconds     = 10
)

// AlertConfig carries the tunables of the deadline alerting flows. The two
// cooldowns correspond to the two gated flows: the in-app alert panel and
// the mobile deadline check.
type AlertConfig struct {
	PanelCooldown     time.Duration
	DeadlineCooldown  time.Duration
	AutoCheckInterval time.Duration
	PanelAlertLimit   int
	FetchTimeout      time.Duration

	// PushPermission mirrors the notification permission state reported by
	// the client platform: granted, denied, or default (not yet asked).
	PushPermission string

	// DashboardOrigin is the origin the alert surface is served from; the
	// dispatcher's capability probe requires it to be secure.
	DashboardOrigin string

	// GateStoreBackend selects the deduplication record store: "memory"
	// (default, process-local) or "redis" (shared across instances).
	GateStoreBackend string
}

func LoadAlertConfig() *AlertConfig {
	permission := os.Getenv(pushPermissionEnv)
	if permission == "" {
		permission = "granted"
	}

	origin := os.Getenv(dashboardOriginEnv)
	if origin == "" {
		origin = "http://localhost:8080"
	}

	gateStore := os.Getenv(gateStoreBackendEnv)
	if gateStore == "" {
		gateStore = "memory"
	}

	return &AlertConfig{
		PanelCooldown:     minutesFromEnv(panelCooldownMinutesEnv, defaultPanelCooldownMinutes),
		DeadlineCooldown:  minutesFromEnv(deadlineCooldownMinutesEnv, defaultDeadlineCooldownMinutes),
		AutoCheckInterval: minutesFromEnv(autoCheckIntervalEnv, defaultAutoCheckMinutes),
		PanelAlertLimit:   intFromEnv(panelAlertLimitEnv, defaultPanelAlertLimit),
		FetchTimeout:      time.Duration(intFromEnv(fetchTimeoutSecondsEnv, defaultFetchTimeoutSeconds)) * time.Second,
		PushPermission:    permission,
		DashboardOrigin:   origin,
		GateStoreBackend:  gateStore,
	}
}

func minutesFromEnv(key string, def int) time.Duration {
	return time.Duration(intFromEnv(key, def)) * time.Minute
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
