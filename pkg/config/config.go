package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is the OpenRouter OpenAI-compatible endpoint.
	DefaultBaseURL   = "https://openrouter.ai/api/v1"
	DefaultModel     = "anthropic/claude-haiku-4.5"
	DefaultMaxTokens = 128

	EnvAPIKey  = "OPENROUTER_API_KEY"
	EnvBaseURL = "OPENROUTER_BASE_URL"

	dirName  = ".agent-loop"
	fileName = "config.yaml"
)

// ErrMissingAPIKey is returned by Validate when no API key is configured.
var ErrMissingAPIKey = errors.New(EnvAPIKey + " is not set")

// Config holds all runtime configuration for the agent.
// It is built once at startup and passed by value into constructors.
type Config struct {
	APIKey  string `yaml:"-"`
	BaseURL string `yaml:"-"`

	Model        string        `yaml:"model"`
	MaxTokens    int64         `yaml:"max_tokens"`
	MaxTurns     int           `yaml:"max_turns"`
	Timeout      time.Duration `yaml:"timeout"`
	SystemPrompt string        `yaml:"system_prompt"`
	Verbose      bool          `yaml:"verbose"`
}

// DefaultConfig returns a baseline configuration without side effects.
// MaxTurns and Timeout are zero, meaning unbounded.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Model:     DefaultModel,
		MaxTokens: DefaultMaxTokens,
	}
}

// Load builds the configuration from defaults, the user-level and
// project-level YAML files (project wins) and the environment.
func Load() (Config, error) {
	cfg := DefaultConfig()

	if home, err := os.UserHomeDir(); err == nil {
		if err := mergeFile(filepath.Join(home, dirName, fileName), &cfg); err != nil {
			return Config{}, fmt.Errorf("load user config: %w", err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return Config{}, fmt.Errorf("get working directory: %w", err)
	}
	if err := mergeFile(filepath.Join(wd, dirName, fileName), &cfg); err != nil {
		return Config{}, fmt.Errorf("load project config: %w", err)
	}

	ApplyEnv(&cfg)
	return Normalize(cfg), nil
}

// ApplyEnv overlays the OPENROUTER_* environment variables onto cfg.
func ApplyEnv(cfg *Config) {
	cfg.APIKey = strings.TrimSpace(os.Getenv(EnvAPIKey))
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		cfg.BaseURL = v
	}
}

// mergeFile unmarshals path over cfg. A missing file is not an error;
// keys absent from the file keep their current values.
func mergeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.SystemPrompt = strings.TrimSpace(cfg.SystemPrompt)

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens < 0 {
		cfg.MaxTokens = 0
	}
	if cfg.MaxTurns < 0 {
		cfg.MaxTurns = 0
	}
	if cfg.Timeout < 0 {
		cfg.Timeout = 0
	}
	return cfg
}

// Validate reports configuration that makes a run impossible.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Model == "" {
		return errors.New("model is not set")
	}
	return nil
}
