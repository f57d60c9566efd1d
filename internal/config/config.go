package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/morgansundqvist/musecase/internal/domain"
	"github.com/morgansundqvist/musecase/internal/logger"
)

const DefaultConfigPath = "config.yaml"

// Config holds every startup setting. Values come from defaults, then the
// optional YAML file, then the environment.
type Config struct {
	Server struct {
		Port         string        `yaml:"port"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		MaxUploadMB  int           `yaml:"max_upload_mb"`
	} `yaml:"server"`

	LLM struct {
		APIKey  string        `yaml:"-"` // env only
		BaseURL string        `yaml:"base_url"`
		Model   string        `yaml:"model"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"llm"`

	Log struct {
		Mode     string          `yaml:"mode"`
		Level    string          `yaml:"level"`
		Output   string          `yaml:"output"`
		Rotation logger.Rotation `yaml:"rotation"`
	} `yaml:"log"`

	Branding struct {
		ImagePath string `yaml:"image_path"`
	} `yaml:"branding"`
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = "3000"
	cfg.Server.ReadTimeout = 30 * time.Second
	cfg.Server.WriteTimeout = 90 * time.Second
	cfg.Server.MaxUploadMB = 10
	cfg.LLM.BaseURL = "https://api.groq.com/openai/v1/"
	cfg.LLM.Model = domain.DefaultModel
	cfg.LLM.Timeout = 60 * time.Second
	cfg.Log.Mode = "dev"
	cfg.Log.Level = "info"
	cfg.Log.Output = "stderr"
	cfg.Log.Rotation = logger.Rotation{MaxSize: 50, MaxBackups: 3, MaxAge: 14}
	cfg.Branding.ImagePath = "branding.jpg"
	return cfg
}

// Load reads .env (if present), the YAML file at path (if present) and the
// environment. It does not validate; call Validate before constructing clients.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path == "" {
		path = getEnv("MUSECASE_CONFIG", DefaultConfigPath)
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &domain.ConfigurationError{Setting: path, Reason: err.Error()}
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	cfg.LLM.APIKey = getEnv("GROQ_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.BaseURL = getEnv("GROQ_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.Model = getEnv("MUSECASE_MODEL", cfg.LLM.Model)
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Log.Mode = getEnv("MUSECASE_LOG_MODE", cfg.Log.Mode)
	cfg.Log.Level = getEnv("MUSECASE_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Output = getEnv("MUSECASE_LOG_OUTPUT", cfg.Log.Output)
	cfg.Branding.ImagePath = getEnv("MUSECASE_BRANDING_IMAGE", cfg.Branding.ImagePath)

	if cfg.LLM.Timeout, err = getEnvSeconds("MUSECASE_HTTP_TIMEOUT_SEC", cfg.LLM.Timeout); err != nil {
		return nil, err
	}
	if cfg.Server.MaxUploadMB, err = getEnvInt("MUSECASE_MAX_UPLOAD_MB", cfg.Server.MaxUploadMB); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports the first missing or invalid setting as a ConfigurationError.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return &domain.ConfigurationError{Setting: "GROQ_API_KEY", Reason: "must be set in the environment or .env file"}
	}
	if c.Server.Port == "" {
		return &domain.ConfigurationError{Setting: "PORT", Reason: "must not be empty"}
	}
	if c.Server.MaxUploadMB <= 0 {
		return &domain.ConfigurationError{Setting: "server.max_upload_mb", Reason: "must be positive"}
	}
	if c.LLM.Timeout <= 0 {
		return &domain.ConfigurationError{Setting: "llm.timeout", Reason: "must be positive"}
	}
	return nil
}

func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{
		Mode:     c.Log.Mode,
		Level:    c.Log.Level,
		Output:   c.Log.Output,
		Rotation: c.Log.Rotation,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, &domain.ConfigurationError{Setting: key, Reason: fmt.Sprintf("invalid integer %q", valueStr)}
	}
	return value, nil
}

func getEnvSeconds(key string, fallback time.Duration) (time.Duration, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, &domain.ConfigurationError{Setting: key, Reason: fmt.Sprintf("invalid seconds %q", valueStr)}
	}
	return time.Duration(value) * time.Second, nil
}
