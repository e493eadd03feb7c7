// Package auth resolves the OpenRouter API key used for model calls.
package auth

import (
	"fmt"
	"os"
	"strings"
)

// EnvAPIKey is the environment variable checked when no explicit key or key
// file is configured.
const EnvAPIKey = "OPENROUTER_API_KEY"

// Credentials holds the resolved API key.
type Credentials struct {
	APIKey string
	Source string // "config", "file", or "env"
}

// LoadCredentials resolves the API key from the first available source: the
// explicit key, then the key file, then $OPENROUTER_API_KEY.
func LoadCredentials(key, keyFile string) (*Credentials, error) {
	if k := strings.TrimSpace(key); k != "" {
		return &Credentials{APIKey: k, Source: "config"}, nil
	}

	if keyFile != "" {
		k, err := LoadKeyFile(keyFile)
		if err != nil {
			return nil, fmt.Errorf("load key file: %w", err)
		}
		return &Credentials{APIKey: k, Source: "file"}, nil
	}

	if k := strings.TrimSpace(os.Getenv(EnvAPIKey)); k != "" {
		return &Credentials{APIKey: k, Source: "env"}, nil
	}

	return nil, fmt.Errorf("openrouter api key not set: configure one or export %s", EnvAPIKey)
}

// LoadKeyFile reads an API key from a file. Blank lines and #-comments are
// skipped; the first remaining line is the key.
func LoadKeyFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read key file: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, nil
	}

	return "", fmt.Errorf("no key found in %s", path)
}

// Redacted returns the key in a form safe for logs.
func (c *Credentials) Redacted() string {
	if len(c.APIKey) <= 8 {
		return "****"
	}
	return c.APIKey[:4] + "..." + c.APIKey[len(c.APIKey)-4:]
}
