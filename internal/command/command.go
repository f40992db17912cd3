// Package command wires the CLI subcommands to the scraper internals.
package command

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"docscrape/internal/browser"
	"docscrape/internal/config"
	"docscrape/internal/scraper"
	"docscrape/internal/storage"
	"docscrape/pkg/models"
)

// globalFlags are shared by every subcommand; defaults come from the
// environment-backed config so flags only need to be set to override.
func globalFlags(cfg *config.Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "base URL of the help center",
			Value: cfg.BaseURL,
		},
		&cli.DurationFlag{
			Name:  "delay",
			Usage: "delay between batches and per-domain request interval",
			Value: cfg.RateLimit,
		},
		&cli.IntFlag{
			Name:  "retries",
			Usage: "maximum fetch attempts per page",
			Value: int64(cfg.Retries),
		},
	}
}

func newBrowser(ctx context.Context, cfg *config.Config, cmd *cli.Command) (*browser.Browser, error) {
	return browser.New(ctx, browser.Options{
		UserAgent:  cfg.UserAgent,
		NavTimeout: cfg.NavTimeout,
		Settle:     cfg.Settle,
		Retries:    int(cmd.Int("retries")),
	})
}

func newPipeline(b *browser.Browser, cfg *config.Config, cmd *cli.Command, batchSize int) *scraper.Pipeline {
	delay := cmd.Duration("delay")
	domains := scraper.NewDomainManager(delay, cfg.UserAgent)
	return scraper.NewPipeline(b, domains, scraper.BatchOptions{
		BatchSize: batchSize,
		Delay:     delay,
		Progress:  true,
	})
}

// archiveResults pushes extraction results into the Postgres archive
// when DB_URL is configured. A missing archive is not an error.
func archiveResults(cfg *config.Config, results []models.Article) {
	if cfg.DatabaseURL == "" {
		return
	}

	store, err := storage.Open(cfg.DatabaseURL)
	if err != nil {
		log.Errorf("archive unavailable: %v", err)
		return
	}
	defer store.Close()

	ch := make(chan models.Article, len(results))
	done := store.StartArticleWorker(ch)
	for _, a := range results {
		ch <- a
	}
	close(ch)

	select {
	case <-done:
		log.Infof("archived %d articles to database", len(results))
	case <-time.After(30 * time.Second):
		log.Warn("timed out waiting for archive worker")
	}
}

// splitSources parses the comma-separated --sources flag value.
func splitSources(value string) []string {
	if value == "" {
		return nil
	}
	var sources []string
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			sources = append(sources, s)
		}
	}
	return sources
}
