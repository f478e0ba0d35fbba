package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/xjtian/monarch-sankeymatic/internal/commands"
)

func main() {
	// Stdout is reserved for diagram output, so logs go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// A .env file can set MONARCH_SANKEYMATIC_CONFIG; absence is fine.
	_ = godotenv.Load()

	rootCmd := commands.NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
