package dispatch

import (
	"net/url"
	"strings"
)

// Capabilities is the startup probe result. It is evaluated once when the
// dispatcher is constructed and cached for the process lifetime.
type Capabilities struct {
	PushConfigured    bool
	PermissionGranted bool
	SecureContext     bool
}

// CanPush reports whether the background push channel is usable at all.
func (c Capabilities) CanPush() bool {
	return c.PushConfigured && c.PermissionGranted && c.SecureContext
}

// Blocked reports whether dispatch must be refused outright rather than
// degraded. Permission denial and an insecure origin are capability gaps;
// a merely unconfigured push channel is not.
func (c Capabilities) Blocked() bool {
	return !c.PermissionGranted || !c.SecureContext
}

// isSecureOrigin mirrors the secure-context rule of browser push: HTTPS
// origins and localhost qualify, anything else does not.
func isSecureOrigin(origin string) bool {
	if origin == "" {
		return false
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}

	if u.Scheme == "https" {
		return true
	}

	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || strings.HasSuffix(host, ".localhost")
}
