package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderGemini    = "gemini"
	ProviderAzure     = "azure"
)

// DefaultOpenAIBaseURL is the local OpenAI-compatible server MODEL_A/MODEL_B
// point at when no base url is set.
const DefaultOpenAIBaseURL = "http://localhost:8000/v1"

type Config struct {
	Server      ServerConfig
	Upload      UploadConfig
	Models      ModelsConfig
	RedisConfig RedisConfig
	StatsEnable bool `env:"STATS_ENABLE"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR" envDefault:"redis:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REDIS_TTL" envDefault:"24h"`
}

type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8080"`
	Timeout         time.Duration `env:"SERVER_TIMEOUT" envDefault:"2m"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ThrottleLimit   int           `env:"SERVER_THROTTLE_LIMIT" envDefault:"50"`
}

type UploadConfig struct {
	MaxBytes    int64 `env:"UPLOAD_MAX_BYTES" envDefault:"33554432"`
	MemoryBytes int64 `env:"UPLOAD_MEMORY_BYTES" envDefault:"8388608"`
}

type ModelsConfig struct {
	File    string        `env:"MODELS_FILE"`
	Default string        `env:"DEFAULT_MODEL" envDefault:"model_a"`
	Compare []string      `env:"COMPARE_MODELS" envDefault:"model_a,model_b" envSeparator:","`
	Timeout time.Duration `env:"MODEL_TIMEOUT" envDefault:"60s"`

	A ModelConfig `envPrefix:"MODEL_A_"`
	B ModelConfig `envPrefix:"MODEL_B_"`

	// Entries is the resolved catalog: A, B, then the MODELS_FILE entries.
	Entries []ModelConfig
}

// ModelConfig describes one backend a ModelIdentifier resolves to.
type ModelConfig struct {
	ID           string `env:"ID" yaml:"id"`
	Provider     string `env:"PROVIDER" envDefault:"openai" yaml:"provider"`
	Name         string `env:"NAME" envDefault:"default" yaml:"name"`
	BaseURL      string `env:"BASE_URL" yaml:"base_url"`
	APIKey       string `env:"API_KEY" yaml:"api_key"`
	APIKeyEnv    string `yaml:"api_key_env"`
	APIVersion   string `env:"API_VERSION" yaml:"api_version"`
	MaxTokens    int    `env:"MAX_TOKENS" envDefault:"1024" yaml:"max_tokens"`
	SystemPrompt string `env:"SYSTEM_PROMPT" yaml:"system_prompt"`
}

type modelsFile struct {
	Models []ModelConfig `yaml:"models"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.Models.A.ID == "" {
		cfg.Models.A.ID = "model_a"
	}
	if cfg.Models.B.ID == "" {
		cfg.Models.B.ID = "model_b"
	}
	for _, m := range []*ModelConfig{&cfg.Models.A, &cfg.Models.B} {
		if m.Provider == ProviderOpenAI && m.BaseURL == "" {
			m.BaseURL = DefaultOpenAIBaseURL
		}
	}
	cfg.Models.Entries = []ModelConfig{cfg.Models.A, cfg.Models.B}

	if cfg.Models.File != "" {
		extra, err := loadModelsFile(cfg.Models.File)
		if err != nil {
			return nil, err
		}
		cfg.Models.Entries = merge(cfg.Models.Entries, extra)
	}

	if err := cfg.Models.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadModelsFile(path string) ([]ModelConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read models file: %w", err)
	}

	var f modelsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse models file %s: %w", path, err)
	}

	for i := range f.Models {
		m := &f.Models[i]
		if m.Provider == "" {
			m.Provider = ProviderOpenAI
		}
		if m.APIKey == "" && m.APIKeyEnv != "" {
			m.APIKey = os.Getenv(m.APIKeyEnv)
		}
		if m.MaxTokens == 0 {
			m.MaxTokens = 1024
		}
	}
	return f.Models, nil
}

// merge appends extra entries, replacing base entries with the same id.
func merge(base, extra []ModelConfig) []ModelConfig {
	out := append([]ModelConfig(nil), base...)
	for _, m := range extra {
		replaced := false
		for i := range out {
			if out[i].ID == m.ID {
				out[i] = m
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, m)
		}
	}
	return out
}

func (m ModelsConfig) Validate() error {
	seen := make(map[string]struct{}, len(m.Entries))
	for _, e := range m.Entries {
		if e.ID == "" {
			return fmt.Errorf("model entry without id (provider %q)", e.Provider)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("duplicate model id %q", e.ID)
		}
		switch e.Provider {
		case ProviderOpenAI, ProviderAnthropic, ProviderOllama, ProviderGemini, ProviderAzure:
		default:
			return fmt.Errorf("model %q: unsupported provider %q", e.ID, e.Provider)
		}
		seen[e.ID] = struct{}{}
	}

	if _, ok := seen[m.Default]; !ok {
		return fmt.Errorf("default model %q is not configured", m.Default)
	}
	for _, id := range m.Compare {
		if _, ok := seen[id]; !ok {
			return fmt.Errorf("compare model %q is not configured", id)
		}
	}
	if m.Timeout <= 0 {
		return fmt.Errorf("model timeout must be positive, got %s", m.Timeout)
	}
	return nil
}
