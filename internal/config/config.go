package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	CanonicalLanguage string  `envconfig:"CANONICAL_LANGUAGE" default:"en"`
	ConfidenceFloor   float64 `envconfig:"CONFIDENCE_FLOOR" default:"0.6"`

	TranslationProvider string        `envconfig:"TRANSLATION_PROVIDER" default:"remote"`
	GatewayEndpoint     string        `envconfig:"GATEWAY_ENDPOINT" default:"http://127.0.0.1:5000"`
	GatewayAPIKey       string        `envconfig:"GATEWAY_API_KEY" default:""`
	GatewayTimeout      time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"10s"`
	LLMEndpoint         string        `envconfig:"LLM_ENDPOINT" default:""`
	LLMModel            string        `envconfig:"LLM_MODEL" default:""`

	GenerationEndpoint string `envconfig:"GENERATION_ENDPOINT" default:"http://127.0.0.1:8845/v1"`
	GenerationModel    string `envconfig:"GENERATION_MODEL" default:""`

	CacheCapacity int           `envconfig:"CACHE_CAPACITY" default:"10000"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"1h"`
	BatchInterval time.Duration `envconfig:"BATCH_INTERVAL" default:"200ms"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.CanonicalLanguage) == "" {
		return fmt.Errorf("CANONICAL_LANGUAGE is required")
	}
	if c.ConfidenceFloor < 0 || c.ConfidenceFloor > 1 {
		return fmt.Errorf("CONFIDENCE_FLOOR must be between 0 and 1")
	}
	if c.GatewayTimeout < time.Second {
		return fmt.Errorf("GATEWAY_TIMEOUT must be >= 1s")
	}
	if c.CacheCapacity < 1 {
		return fmt.Errorf("CACHE_CAPACITY must be >= 1")
	}
	if c.CacheTTL < time.Minute {
		return fmt.Errorf("CACHE_TTL must be >= 1m")
	}
	if c.BatchInterval <= 0 {
		return fmt.Errorf("BATCH_INTERVAL must be > 0")
	}
	switch strings.ToLower(strings.TrimSpace(c.TranslationProvider)) {
	case "remote", "llm":
	default:
		return fmt.Errorf("TRANSLATION_PROVIDER must be remote or llm")
	}
	return nil
}

func (c *Config) CORSAllowedOriginsList() []string {
	if c == nil {
		return nil
	}

	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if _, exists := seen[origin]; exists {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins
}
