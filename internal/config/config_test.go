package config

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Environment:         "local",
		LogLevel:            "info",
		CanonicalLanguage:   "en",
		ConfidenceFloor:     0.6,
		TranslationProvider: "remote",
		GatewayTimeout:      10 * time.Second,
		CacheCapacity:       10_000,
		CacheTTL:            time.Hour,
		BatchInterval:       200 * time.Millisecond,
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	mutations := map[string]func(*Config){
		"blank canonical language": func(c *Config) { c.CanonicalLanguage = " " },
		"confidence floor above 1": func(c *Config) { c.ConfidenceFloor = 1.5 },
		"sub-second timeout":       func(c *Config) { c.GatewayTimeout = 100 * time.Millisecond },
		"zero cache capacity":      func(c *Config) { c.CacheCapacity = 0 },
		"short cache ttl":          func(c *Config) { c.CacheTTL = time.Second },
		"zero batch interval":      func(c *Config) { c.BatchInterval = 0 },
		"unknown provider":         func(c *Config) { c.TranslationProvider = "google" },
	}

	for name, mutate := range mutations {
		cfg := validConfig()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestCORSAllowedOriginsList(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.CORSAllowedOrigins = " https://a.example , https://b.example,https://a.example ,"
	origins := cfg.CORSAllowedOriginsList()
	if len(origins) != 2 {
		t.Fatalf("unexpected origins: %v", origins)
	}
	if origins[0] != "https://a.example" || origins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", origins)
	}
}
