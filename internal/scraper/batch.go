package scraper

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"

	"docscrape/pkg/models"
)

// Fetcher fetches rendered HTML for a URL. *browser.Browser satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, time.Duration, error)
}

// BatchOptions control chunking of the article pipeline.
type BatchOptions struct {
	// BatchSize is how many articles are fetched concurrently per chunk.
	BatchSize int
	// Delay is the pause between chunks.
	Delay time.Duration
	// Progress renders a progress bar over the whole run.
	Progress bool
}

// Pipeline extracts articles in fixed-size chunks, politely.
type Pipeline struct {
	fetcher Fetcher
	domains *DomainManager
	opts    BatchOptions
}

func NewPipeline(fetcher Fetcher, domains *DomainManager, opts BatchOptions) *Pipeline {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 5
	}
	return &Pipeline{fetcher: fetcher, domains: domains, opts: opts}
}

var errRobotsDisallowed = errors.New("disallowed by robots.txt")

// ProcessArticles runs every URL through fetch+extract and returns one
// record per URL in input order. Individual failures never abort the
// run; they come back as success=false records.
func (p *Pipeline) ProcessArticles(ctx context.Context, urls []string) []models.Article {
	results := make([]models.Article, len(urls))

	size := p.opts.BatchSize
	totalChunks := (len(urls) + size - 1) / size
	log.Infof("processing %d articles in %d batches of %d", len(urls), totalChunks, size)

	var bar *progressbar.ProgressBar
	if p.opts.Progress {
		bar = progressbar.Default(int64(len(urls)))
	}

	for start := 0; start < len(urls); start += size {
		end := start + size
		if end > len(urls) {
			end = len(urls)
		}
		chunk := urls[start:end]
		log.Infof("batch %d/%d: %d articles", start/size+1, totalChunks, len(chunk))

		var wg sync.WaitGroup
		for i, u := range chunk {
			wg.Add(1)
			go func(idx int, link string) {
				defer wg.Done()
				results[idx] = p.processOne(ctx, link)
				if bar != nil {
					bar.Add(1)
				}
			}(start+i, u)
		}
		wg.Wait()

		if end < len(urls) && p.opts.Delay > 0 {
			select {
			case <-ctx.Done():
				// Mark everything left as failed and stop.
				for i := end; i < len(urls); i++ {
					results[i] = failedArticle(urls[i], ctx.Err())
				}
				return results
			case <-time.After(p.opts.Delay):
			}
		}
	}

	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}
	log.Infof("completed: %d/%d articles extracted successfully", succeeded, len(urls))
	return results
}

func (p *Pipeline) processOne(ctx context.Context, link string) models.Article {
	if p.domains != nil {
		if !p.domains.IsAllowed(link) {
			log.Warnf("skipping %s: %v", link, errRobotsDisallowed)
			return failedArticle(link, errRobotsDisallowed)
		}
		if err := p.domains.Wait(ctx, link); err != nil {
			return failedArticle(link, err)
		}
	}

	pageHTML, loadTime, err := p.fetcher.Fetch(ctx, link)
	if err != nil {
		log.Warnf("failed: %s: %v", link, err)
		return failedArticle(link, err)
	}

	art, err := Extract(pageHTML, link)
	if err != nil {
		return failedArticle(link, err)
	}
	art.LoadTime = loadTime

	log.Debugf("extracted %q (%d words, %d sections)", art.Title, art.WordCount, len(art.Sections))
	return art
}

func failedArticle(link string, err error) models.Article {
	return models.Article{
		URL:         link,
		Error:       err.Error(),
		ExtractedAt: time.Now().Format(time.RFC3339),
	}
}
