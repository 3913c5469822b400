package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"studyloop.dev/backend/internal/language"
)

func runLanguages(args []string) int {
	fs := flag.NewFlagSet("languages", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	for _, info := range language.All() {
		fmt.Printf("%-4s %-12s %s\n", info.Code, info.Name, info.Native)
	}
	return 0
}
