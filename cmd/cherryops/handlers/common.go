// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/imamik/cherryops/internal/config"
	"github.com/imamik/cherryops/internal/platform/cherry"
	"github.com/imamik/cherryops/internal/telemetry"
)

// Options carries the flag values shared by every resource command.
type Options struct {
	File      string
	AuthToken string
	LogLevel  string
	Check     bool
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newClient creates a Cherry Servers API client.
	newClient = func(token string) cherry.Client {
		return cherry.NewRealClient(token, cherry.WithHTTPClient(config.LoadTimeouts().HTTPClient()))
	}

	// stdout receives the machine-readable result.
	stdout io.Writer = os.Stdout

	// loadTask reads and decodes a task file.
	loadTask = config.LoadTask
)

// params is the part of a task every resource shares: it can default and
// validate itself and may carry an inline auth token.
type params interface {
	SetDefaults()
	Validate() error
	Token() string
}

// prepare loads the task file into p, applies defaults and validates. It
// returns the resolved API token, or "" in check mode where no token is
// needed.
func prepare(opts Options, p params) (string, error) {
	if opts.File == "" {
		return "", fmt.Errorf(`the "--file" flag is required`)
	}
	if err := loadTask(opts.File, p); err != nil {
		return "", err
	}
	p.SetDefaults()
	if err := p.Validate(); err != nil {
		return "", err
	}
	if opts.Check {
		return "", nil
	}

	token := opts.AuthToken
	if token == "" {
		token = p.Token()
	}
	return config.Token(token)
}

func newLogger(opts Options) zerolog.Logger {
	return telemetry.NewLogger(os.Stderr, opts.LogLevel)
}

// writeResult prints the JSON result document to stdout: the aggregate
// changed flag plus the final records under the resource's key.
func writeResult(key string, changed bool, records any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"changed": changed,
		key:       records,
	})
}
