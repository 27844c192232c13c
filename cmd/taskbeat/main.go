package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/sandeepkv93/taskbeat/internal/cli"
)

// Set by goreleaser ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	_ = godotenv.Load()

	cli.SetVersionInfo(version, commit, date)
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "taskbeat: %v\n", err)
		os.Exit(1)
	}
}
