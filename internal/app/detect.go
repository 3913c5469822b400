package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"studyloop.dev/backend/internal/cli"
)

func runDetect(args []string) int {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  studyloop detect <text> [--env .env] [--timeout 30s]")
		return 2
	}

	text := strings.TrimSpace(fs.Arg(0))
	if text == "" {
		fmt.Fprintln(os.Stderr, "detect argument must not be empty")
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

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	detection := service.Detect(ctx, text)
	fmt.Printf(
		"detect code=%s confidence=%.2f supported=%t method=%s name=%q native=%q\n",
		detection.Code,
		detection.Confidence,
		detection.Supported,
		detection.Method,
		detection.Name,
		detection.Native,
	)
	return 0
}
