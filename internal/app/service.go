package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"studyloop.dev/backend/internal/cache"
	"studyloop.dev/backend/internal/cli"
	"studyloop.dev/backend/internal/config"
	"studyloop.dev/backend/internal/generation"
	"studyloop.dev/backend/internal/logging"
	"studyloop.dev/backend/internal/translation"
)

// bootstrap loads the env file, configuration, and logger shared by every
// command.
func bootstrap(envLoader *cli.EnvLoader) (*config.Config, zerolog.Logger, error) {
	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("initialize logger: %w", err)
	}

	return cfg, logger, nil
}

// buildTranslationService wires the provider registry and the
// orchestrator from configuration.
func buildTranslationService(cfg *config.Config, logger zerolog.Logger) (*translation.Service, error) {
	registry := translation.NewRegistry(cfg.TranslationProvider)

	if err := registry.Register(translation.NewRemoteProvider(cfg.GatewayEndpoint, cfg.GatewayAPIKey)); err != nil {
		return nil, fmt.Errorf("register remote provider: %w", err)
	}
	if strings.TrimSpace(cfg.LLMEndpoint) != "" || strings.EqualFold(cfg.TranslationProvider, "llm") {
		if err := registry.Register(translation.NewLLMProvider(cfg.LLMEndpoint, cfg.LLMModel)); err != nil {
			return nil, fmt.Errorf("register llm provider: %w", err)
		}
	}

	cacheOpts := cache.Options{
		TTL:      cfg.CacheTTL,
		Capacity: cfg.CacheCapacity,
	}

	return translation.NewService(registry, logger, translation.Options{
		CanonicalLanguage: cfg.CanonicalLanguage,
		ConfidenceFloor:   cfg.ConfidenceFloor,
		GatewayTimeout:    cfg.GatewayTimeout,
		BatchInterval:     cfg.BatchInterval,
		DetectionCache:    cacheOpts,
		TranslationCache:  cacheOpts,
	}), nil
}

// buildGenerationMiddleware wraps the generation client with the
// translation middleware.
func buildGenerationMiddleware(cfg *config.Config, service *translation.Service, logger zerolog.Logger) *generation.Middleware {
	generator := generation.NewLLMGenerator(cfg.GenerationEndpoint, cfg.GenerationModel)
	return generation.NewMiddleware(service, generator, cfg.GatewayTimeout, logger)
}
