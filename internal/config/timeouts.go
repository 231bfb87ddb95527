package config

import (
	"net/http"
	"os"
	"time"
)

// Timeouts holds configurable timing values. All can be customized via
// environment variables; the server-activation timeout is additionally
// overridable per task with wait_timeout.
type Timeouts struct {
	ServerActive time.Duration // total wait for servers to reach the active state
	PollInterval time.Duration // delay between activation polls
	HTTP         time.Duration // per-request HTTP timeout
}

// LoadTimeouts loads timeout configuration from environment variables.
// If a variable is not set or invalid, the default is used.
//
// Environment Variables:
//   - CHERRY_TIMEOUT_SERVER_ACTIVE (default: 30m)
//   - CHERRY_POLL_INTERVAL (default: 10s)
//   - CHERRY_TIMEOUT_HTTP (default: 30s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		ServerActive: parseDuration("CHERRY_TIMEOUT_SERVER_ACTIVE", time.Duration(DefaultWaitTimeout)*time.Second),
		PollInterval: parseDuration("CHERRY_POLL_INTERVAL", 10*time.Second),
		HTTP:         parseDuration("CHERRY_TIMEOUT_HTTP", 30*time.Second),
	}
}

// HTTPClient returns an HTTP client honoring the per-request timeout.
func (t *Timeouts) HTTPClient() *http.Client {
	return &http.Client{Timeout: t.HTTP}
}

// parseDuration parses a duration from an environment variable, falling back
// to the default when unset or unparsable.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
