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
	"studyloop.dev/backend/internal/language"
)

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 2*time.Minute, "Command timeout")
	source := fs.String("source", "", "Source language (ISO 639-1); empty enables detection")
	target := fs.String("target", "", "Target language (ISO 639-1, for example: en, zh)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		printTranslateUsage()
		return 2
	}

	targetLang := language.RemapBackendCode(*target)
	if targetLang == "" {
		fmt.Fprintln(os.Stderr, "--target is required and must be a valid language code")
		return 2
	}

	text := strings.TrimSpace(fs.Arg(0))
	if text == "" {
		fmt.Fprintln(os.Stderr, "translate argument must not be empty")
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

	result, err := service.Translate(ctx, text, *source, targetLang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Translate failed: %v\n", err)
		return 1
	}

	fmt.Printf(
		"translate source=%s target=%s confidence=%.2f service=%s translated=%t\n",
		result.SourceLang,
		result.TargetLang,
		result.Confidence,
		result.ServiceUsed,
		result.Translated,
	)
	if result.Error != "" {
		fmt.Printf("warning: %s\n", result.Error)
	}
	fmt.Println(result.TranslatedText)
	return 0
}

func printTranslateUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  studyloop translate <text> --target <lang> [--source <lang>] [--env .env] [--timeout 2m]")
}
