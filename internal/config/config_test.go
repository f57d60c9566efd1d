package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/morgansundqvist/musecase/internal/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GROQ_API_KEY", "GROQ_BASE_URL", "MUSECASE_MODEL", "PORT", "MUSECASE_LOG_MODE",
		"MUSECASE_LOG_LEVEL", "MUSECASE_LOG_OUTPUT", "MUSECASE_BRANDING_IMAGE",
		"MUSECASE_HTTP_TIMEOUT_SEC", "MUSECASE_MAX_UPLOAD_MB", "MUSECASE_CONFIG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LLM.Model != domain.DefaultModel {
		t.Errorf("Model = %q", cfg.LLM.Model)
	}
	if cfg.Server.Port != "3000" || cfg.LLM.Timeout != 60*time.Second {
		t.Errorf("defaults not applied: %+v", cfg.Server)
	}

	var cfgErr *domain.ConfigurationError
	if err := cfg.Validate(); !errors.As(err, &cfgErr) || cfgErr.Setting != "GROQ_API_KEY" {
		t.Errorf("Validate() error = %v, want ConfigurationError for GROQ_API_KEY", err)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "8080"
  max_upload_mb: 2
llm:
  model: llama-3.1-8b-instant
  timeout: 15s
log:
  mode: prod
branding:
  image_path: assets/logo.png
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("PORT", "9090")
	t.Setenv("MUSECASE_HTTP_TIMEOUT_SEC", "5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"env overrides file port", cfg.Server.Port, "9090"},
		{"file model", cfg.LLM.Model, "llama-3.1-8b-instant"},
		{"env timeout", cfg.LLM.Timeout, 5 * time.Second},
		{"file upload limit", cfg.Server.MaxUploadMB, 2},
		{"file log mode", cfg.Log.Mode, "prod"},
		{"file branding", cfg.Branding.ImagePath, "assets/logo.png"},
		{"env api key", cfg.LLM.APIKey, "gsk_test"},
		{"default base url kept", cfg.LLM.BaseURL, "https://api.groq.com/openai/v1/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		yaml  string
		check func(*Config, error) bool
	}{
		{
			name: "non numeric timeout",
			env:  map[string]string{"MUSECASE_HTTP_TIMEOUT_SEC": "soon"},
			check: func(_ *Config, err error) bool {
				var cfgErr *domain.ConfigurationError
				return errors.As(err, &cfgErr)
			},
		},
		{
			name: "malformed yaml",
			yaml: "server: [",
			check: func(_ *Config, err error) bool {
				var cfgErr *domain.ConfigurationError
				return errors.As(err, &cfgErr)
			},
		},
		{
			name: "zero upload limit fails validation",
			env:  map[string]string{"GROQ_API_KEY": "k", "MUSECASE_MAX_UPLOAD_MB": "0"},
			check: func(cfg *Config, err error) bool {
				if err != nil {
					return false
				}
				var cfgErr *domain.ConfigurationError
				return errors.As(cfg.Validate(), &cfgErr)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := filepath.Join(t.TempDir(), "config.yaml")
			if tt.yaml != "" {
				if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			cfg, err := Load(path)
			if !tt.check(cfg, err) {
				t.Errorf("unexpected result: cfg=%+v err=%v", cfg, err)
			}
		})
	}
}
