package config

// ValidateForRun checks the cross-concern requirements that only matter for
// the long-running service, not for one-off tooling.
func ValidateForRun(cfg *Config) error {
	if cfg.ProjectTrackingURL == "" && cfg.TasksDatabaseDSN == "" {
		return ErrTaskSourceMissing
	}

	switch cfg.Alert.GateStoreBackend {
	case "memory", "redis":
	default:
		return ErrInvalidGateBackend
	}

	return nil
}
