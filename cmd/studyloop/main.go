package main

import (
	"os"

	"studyloop.dev/backend/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
