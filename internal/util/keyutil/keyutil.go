// Package keyutil loads and validates SSH public key material.
package keyutil

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/ssh"
)

// ReadFile reads public key material from a file, stripping trailing
// whitespace so file content compares equal to key material supplied inline.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read key file %s: %w", path, err)
	}
	return strings.TrimRight(string(data), " \t\r\n"), nil
}

// Validate checks that material parses as an OpenSSH authorized key.
func Validate(material string) error {
	if _, _, _, _, err := ssh.ParseAuthorizedKey([]byte(material)); err != nil {
		return fmt.Errorf("invalid SSH public key: %w", err)
	}
	return nil
}

// Fingerprint computes the legacy MD5 colon-separated fingerprint of the key
// material, the format the provider reports for stored keys.
func Fingerprint(material string) (string, error) {
	pub, _, _, _, err := ssh.ParseAuthorizedKey([]byte(material))
	if err != nil {
		return "", fmt.Errorf("invalid SSH public key: %w", err)
	}
	return ssh.FingerprintLegacyMD5(pub), nil
}
