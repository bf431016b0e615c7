package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/fang"
	charmLog "github.com/charmbracelet/log"

	"github.com/evanmorris/clicky/internal/cli"
)

var version = "dev"

func main() {
	logger := charmLog.NewWithOptions(os.Stderr, charmLog.Options{
		Level:           logLevelFromEnv(),
		Prefix:          "clicky",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.TextFormatter,
	})

	root := cli.NewRootCmd(&cli.App{Logger: logger})
	if err := fang.Execute(context.Background(), root, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

// logLevelFromEnv reads CLICKY_LOG; runtime logging stays at warn unless
// asked for, so normal command output is the only thing on the terminal.
func logLevelFromEnv() charmLog.Level {
	raw := strings.TrimSpace(os.Getenv("CLICKY_LOG"))
	if raw == "" {
		return charmLog.WarnLevel
	}
	level, err := charmLog.ParseLevel(raw)
	if err != nil {
		return charmLog.WarnLevel
	}
	return level
}
