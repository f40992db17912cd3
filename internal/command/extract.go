package command

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"docscrape/internal/browser"
	"docscrape/internal/config"
	"docscrape/internal/report"
	"docscrape/internal/scraper"
	"docscrape/pkg/models"
)

// Extract builds the `extract` subcommand.
func Extract(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "extract",
		Usage: "extract structured content from discovered articles",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "links-file",
				Usage: "JSON file containing discovered links",
				Value: "discovered_links.json",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "limit number of articles to extract (0 = no limit)",
			},
			&cli.StringFlag{
				Name:  "sources",
				Usage: "comma-separated source filter (help, developers, partners)",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "output filename prefix",
				Value: "documentation",
			},
			&cli.IntFlag{
				Name:  "batch-size",
				Usage: "number of articles to fetch concurrently",
				Value: int64(cfg.BatchSize),
			},
		}, globalFlags(cfg)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			b, err := newBrowser(ctx, cfg, cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			links, err := loadOrDiscoverLinks(ctx, cmd, b)
			if err != nil {
				return err
			}

			if sources := splitSources(cmd.String("sources")); len(sources) > 0 {
				links, err = report.FilterBySource(links, sources)
				if err != nil {
					return err
				}
				log.Infof("filtered to %d articles from sources: %s", len(links), strings.Join(sources, ", "))
			}

			if limit := int(cmd.Int("limit")); limit > 0 && limit < len(links) {
				links = links[:limit]
				log.Infof("limited to first %d articles", len(links))
			}

			if len(links) == 0 {
				log.Warn("no links available for extraction")
				return nil
			}

			urls := make([]string, len(links))
			for i, l := range links {
				urls[i] = l.URL
			}

			log.Infof("starting extraction of %d articles...", len(urls))
			pipeline := newPipeline(b, cfg, cmd, int(cmd.Int("batch-size")))
			results := pipeline.ProcessArticles(ctx, urls)

			jsonPath, csvPath, err := report.WriteResults(results, cmd.String("output"))
			if err != nil {
				return err
			}
			log.Infof("saved %s and %s", jsonPath, csvPath)

			archiveResults(cfg, results)

			report.RenderStats(os.Stdout, report.ComputeStats(results))
			return nil
		},
	}
}

// loadOrDiscoverLinks reads the links file, falling back to a fresh
// discovery run (which also writes the file) when it does not exist.
func loadOrDiscoverLinks(ctx context.Context, cmd *cli.Command, b *browser.Browser) ([]models.Link, error) {
	linksFile := cmd.String("links-file")

	_, statErr := os.Stat(linksFile)
	if statErr == nil {
		log.Infof("loading links from %s", linksFile)
		return report.LoadLinks(linksFile)
	}
	if !errors.Is(statErr, fs.ErrNotExist) {
		return nil, statErr
	}

	log.Infof("links file %s not found, discovering links first...", linksFile)
	links, err := scraper.DiscoverLinks(ctx, b, cmd.String("base-url"))
	if err != nil {
		return nil, err
	}
	if err := report.SaveLinks(links, linksFile); err != nil {
		return nil, err
	}
	return links, nil
}
