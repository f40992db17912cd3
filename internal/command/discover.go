package command

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"docscrape/internal/config"
	"docscrape/internal/report"
	"docscrape/internal/scraper"
)

// Discover builds the `discover` subcommand.
func Discover(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "discover",
		Usage: "discover documentation article links and save them as JSON",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "output",
				Usage: "output file for discovered links",
				Value: "discovered_links.json",
			},
			&cli.BoolFlag{
				Name:  "deep",
				Usage: "also crawl category and section index pages",
			},
		}, globalFlags(cfg)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			baseURL := cmd.String("base-url")

			b, err := newBrowser(ctx, cfg, cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			log.Info("discovering documentation links...")
			links, err := scraper.DiscoverLinks(ctx, b, baseURL)
			if err != nil {
				return err
			}

			if cmd.Bool("deep") {
				extra, err := scraper.DeepDiscoverLinks(baseURL, cmd.Duration("delay"), cfg.UserAgent, links)
				if err != nil {
					log.Warnf("deep discovery failed: %v", err)
				} else {
					links = append(links, extra...)
				}
			}

			if len(links) == 0 {
				log.Warn("no links discovered")
				return nil
			}

			output := cmd.String("output")
			if err := report.SaveLinks(links, output); err != nil {
				return err
			}

			log.Infof("discovery complete: found %d articles, saved to %s", len(links), output)
			report.RenderSourceBreakdown(os.Stdout, links)
			return nil
		},
	}
}
