// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, defaults and validation

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
server:
  listen_addr: "0.0.0.0:3000"

upstream:
  base_url: "http://localhost:8000"
  timeout: "5s"

session:
  file: "/tmp/session.json"

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ListenAddr != "0.0.0.0:3000" {
		t.Errorf("Server.ListenAddr = %q, want %q", cfg.Server.ListenAddr, "0.0.0.0:3000")
	}
	if cfg.Upstream.BaseURL != "http://localhost:8000" {
		t.Errorf("Upstream.BaseURL = %q, want %q", cfg.Upstream.BaseURL, "http://localhost:8000")
	}
	if cfg.Upstream.Timeout != 5*time.Second {
		t.Errorf("Upstream.Timeout = %v, want %v", cfg.Upstream.Timeout, 5*time.Second)
	}
	if cfg.Session.File != "/tmp/session.json" {
		t.Errorf("Session.File = %q, want %q", cfg.Session.File, "/tmp/session.json")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_BLOG_API", "https://blog.example.com")

	configPath := writeConfig(t, `
server:
  listen_addr: ":3000"

upstream:
  base_url: "${TEST_BLOG_API}"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Upstream.BaseURL != "https://blog.example.com" {
		t.Errorf("Upstream.BaseURL = %q, want %q", cfg.Upstream.BaseURL, "https://blog.example.com")
	}
}

func TestLoad_UnsetEnvVarExpandsEmpty(t *testing.T) {
	configPath := writeConfig(t, `
server:
  listen_addr: ":3000"

upstream:
  base_url: "${DEFINITELY_NOT_SET_BLOG_VAR}"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() expected validation error for empty base_url")
	}
	if !strings.Contains(err.Error(), "upstream.base_url") {
		t.Errorf("error = %v, want mention of upstream.base_url", err)
	}
}

func TestLoad_DefaultTimeout(t *testing.T) {
	configPath := writeConfig(t, `
server:
  listen_addr: ":3000"

upstream:
  base_url: "http://localhost:8000"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Upstream.Timeout != DefaultUpstreamTimeout {
		t.Errorf("Upstream.Timeout = %v, want default %v", cfg.Upstream.Timeout, DefaultUpstreamTimeout)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	configPath := writeConfig(t, `
server:
  listen_addr: ":3000"

upstream:
  base_url: "http://localhost:8000"
  timeout: "not-a-duration"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() expected error for invalid duration")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("error = %v, want mention of timeout", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing listen addr",
			cfg:     Config{Upstream: UpstreamConfig{BaseURL: "http://localhost:8000"}},
			wantErr: "server.listen_addr",
		},
		{
			name:    "missing base url",
			cfg:     Config{Server: ServerConfig{ListenAddr: ":3000"}},
			wantErr: "upstream.base_url",
		},
		{
			name: "bad scheme",
			cfg: Config{
				Server:   ServerConfig{ListenAddr: ":3000"},
				Upstream: UpstreamConfig{BaseURL: "ftp://example.com"},
			},
			wantErr: "http or https",
		},
		{
			name: "bad log level",
			cfg: Config{
				Server:   ServerConfig{ListenAddr: ":3000"},
				Upstream: UpstreamConfig{BaseURL: "http://localhost:8000"},
				Logging:  LoggingConfig{Level: "verbose"},
			},
			wantErr: "logging.level",
		},
		{
			name: "bad log format",
			cfg: Config{
				Server:   ServerConfig{ListenAddr: ":3000"},
				Upstream: UpstreamConfig{BaseURL: "http://localhost:8000"},
				Logging:  LoggingConfig{Format: "xml"},
			},
			wantErr: "logging.format",
		},
		{
			name: "valid",
			cfg: Config{
				Server:   ServerConfig{ListenAddr: ":3000"},
				Upstream: UpstreamConfig{BaseURL: "http://localhost:8000"},
				Logging:  LoggingConfig{Level: "info", Format: "text"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() error = nil, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}
