package config

import "errors"

var (
	ErrRedisAddrMissing   = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB     = errors.New("REDIS_DB must be a valid integer")
	ErrTaskSourceMissing  = errors.New("either PROJECT_TRACKING_URL or TASKS_DATABASE_DSN is required")
	ErrInvalidGateBackend = errors.New("GATE_STORE must be \"memory\" or \"redis\"")
)
