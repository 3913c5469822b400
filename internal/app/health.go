package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"studyloop.dev/backend/internal/cli"
)

func runHealth(args []string) int {
	fs := flag.NewFlagSet("health", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, logger, err := bootstrap(envLoader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		return 1
	}

	service, err := buildTranslationService(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build translation service: %v\n", err)
		return 1
	}

	health := service.HealthCheck()
	fmt.Printf(
		"health status=%s configuration_valid=%t message=%q\n",
		health.Status,
		health.ConfigurationValid,
		health.Message,
	)
	if health.Status == "unhealthy" {
		return 1
	}
	return 0
}
