// Package config defines the task parameter bags for every resource class,
// their validation rules, and credential lookup.
//
// Each resource class (server, ip, sshkey, storage) has one params struct
// mirroring the task file fields. Validation runs before any provider call:
// field-level rules via struct tags, cross-field rules (mutually exclusive
// selectors, required-together combinations) via explicit checks.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvAuthToken is the environment variable consulted when no auth token
// parameter is supplied.
const EnvAuthToken = "CHERRY_AUTH_TOKEN"

// Token returns the API token from the explicit parameter or, when empty,
// from the CHERRY_AUTH_TOKEN environment variable.
func Token(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if token := os.Getenv(EnvAuthToken); token != "" {
		return token, nil
	}
	return "", errors.New(`the "auth_token" parameter or CHERRY_AUTH_TOKEN environment variable is required`)
}

// LoadTask reads a YAML task file into a params struct. Unknown fields are
// rejected so typos surface as configuration errors instead of silent no-ops.
func LoadTask(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open task file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to parse task file %s: %w", path, err)
	}
	return nil
}
