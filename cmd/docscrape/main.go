package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"docscrape/internal/command"
	"docscrape/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	cmd := &cli.Command{
		Name:    "docscrape",
		Usage:   "scrape help-center documentation into structured JSON/CSV",
		Version: "1.0.0",
		Commands: []*cli.Command{
			command.Discover(cfg),
			command.Extract(cfg),
			command.Retry(cfg),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
