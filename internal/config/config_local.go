//go:build !gcloud

package config

// Validate checks the push queue configuration for local builds. The push
// gateway is optional locally: when unset the dispatcher degrades to
// in-app-only delivery.
func (c *PushQueueConfig) Validate() error {
	return nil
}
