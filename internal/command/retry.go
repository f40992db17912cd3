package command

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"docscrape/internal/config"
	"docscrape/internal/report"
	"docscrape/pkg/models"
)

// Retry builds the `retry` subcommand: it re-runs the failed URLs from
// a previous results file and merges the outcomes.
func Retry(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "retry",
		Usage: "retry failed extractions from a previous results file",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "previous-results",
				Usage:    "JSON file containing previous extraction results",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "output filename prefix",
				Value: "documentation_retry",
			},
			&cli.IntFlag{
				Name:  "batch-size",
				Usage: "number of articles to fetch concurrently",
				Value: int64(cfg.BatchSize),
			},
		}, globalFlags(cfg)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			summary, err := report.LoadSummary(cmd.String("previous-results"))
			if err != nil {
				return err
			}

			var kept []models.Article
			var failedURLs []string
			for _, a := range summary.Articles {
				if a.Success {
					kept = append(kept, a)
				} else {
					failedURLs = append(failedURLs, a.URL)
				}
			}

			if len(failedURLs) == 0 {
				log.Info("no failed articles found in previous results")
				return nil
			}
			log.Infof("found %d failed articles to retry", len(failedURLs))

			b, err := newBrowser(ctx, cfg, cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			pipeline := newPipeline(b, cfg, cmd, int(cmd.Int("batch-size")))
			retried := pipeline.ProcessArticles(ctx, failedURLs)

			combined := append(kept, retried...)
			jsonPath, csvPath, err := report.WriteResults(combined, cmd.String("output"))
			if err != nil {
				return err
			}
			log.Infof("saved %s and %s", jsonPath, csvPath)

			archiveResults(cfg, retried)

			recovered := 0
			for _, a := range retried {
				if a.Success {
					recovered++
				}
			}
			log.Infof("retry completed: %d additional articles extracted successfully", recovered)

			report.RenderStats(os.Stdout, report.ComputeStats(combined))
			return nil
		},
	}
}
