package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/quantmind-br/pkgreq/internal/cmd"
	"github.com/quantmind-br/pkgreq/internal/config"
	"github.com/quantmind-br/pkgreq/internal/logging"
	"github.com/quantmind-br/pkgreq/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}

	ui.InitColors(cfg.Logging.Color)

	// Initialize logger
	log := logging.NewLogger(logging.Config{
		Level:   cfg.Logging.Level,
		LogFile: cfg.Paths.LogFile,
		NoColor: cfg.Logging.Color == "never",
	})

	// Execute root command
	rootCmd := cmd.NewRootCmd(cfg, log, version)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !cmd.Silent(err) {
			log.Error().Err(err).Msg("command failed")
			ui.PrintError("%v", err)
		}
		return cmd.ExitCode(err)
	}
	return 0
}
