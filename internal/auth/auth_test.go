package auth

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCredentials_ExplicitKey(t *testing.T) {
	creds, err := LoadCredentials("  sk-or-v1-abc123  ", "")
	if err != nil {
		t.Fatalf("LoadCredentials failed: %v", err)
	}

	if creds.APIKey != "sk-or-v1-abc123" {
		t.Errorf("APIKey = %q, want %q", creds.APIKey, "sk-or-v1-abc123")
	}
	if creds.Source != "config" {
		t.Errorf("Source = %q, want %q", creds.Source, "config")
	}
}

func TestLoadCredentials_ExplicitKeyWinsOverFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(tmpFile, []byte("sk-or-v1-from-file\n"), 0600); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	creds, err := LoadCredentials("sk-or-v1-explicit", tmpFile)
	if err != nil {
		t.Fatalf("LoadCredentials failed: %v", err)
	}

	if creds.APIKey != "sk-or-v1-explicit" {
		t.Errorf("APIKey = %q, want %q", creds.APIKey, "sk-or-v1-explicit")
	}
}

func TestLoadCredentials_FromFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "key")
	content := "# OpenRouter key for the draft\n\nsk-or-v1-from-file\nignored-second-line\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	creds, err := LoadCredentials("", tmpFile)
	if err != nil {
		t.Fatalf("LoadCredentials failed: %v", err)
	}

	if creds.APIKey != "sk-or-v1-from-file" {
		t.Errorf("APIKey = %q, want %q", creds.APIKey, "sk-or-v1-from-file")
	}
	if creds.Source != "file" {
		t.Errorf("Source = %q, want %q", creds.Source, "file")
	}
}

func TestLoadCredentials_FromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "sk-or-v1-from-env")

	creds, err := LoadCredentials("", "")
	if err != nil {
		t.Fatalf("LoadCredentials failed: %v", err)
	}

	if creds.APIKey != "sk-or-v1-from-env" {
		t.Errorf("APIKey = %q, want %q", creds.APIKey, "sk-or-v1-from-env")
	}
	if creds.Source != "env" {
		t.Errorf("Source = %q, want %q", creds.Source, "env")
	}
}

func TestLoadCredentials_NothingSet(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	_, err := LoadCredentials("", "")
	if err == nil {
		t.Error("expected error when no key source is available")
	}
}

func TestLoadCredentials_FileMissing(t *testing.T) {
	_, err := LoadCredentials("", "/nonexistent/path/to/key")
	if err == nil {
		t.Error("expected error for nonexistent key file")
	}
}

func TestLoadKeyFile_OnlyCommentsAndBlanks(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(tmpFile, []byte("# nothing here\n\n  \n"), 0600); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	_, err := LoadKeyFile(tmpFile)
	if err == nil {
		t.Error("expected error for key file with no key")
	}
}

func TestCredentials_Redacted(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"long key", "sk-or-v1-abcdef123456", "sk-o...3456"},
		{"short key", "tiny", "****"},
		{"empty key", "", "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Credentials{APIKey: tt.key}
			if got := c.Redacted(); got != tt.want {
				t.Errorf("Redacted() = %q, want %q", got, tt.want)
			}
		})
	}
}
