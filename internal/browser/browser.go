package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// Options control the headless session and per-page fetch behavior.
type Options struct {
	UserAgent  string
	NavTimeout time.Duration
	Settle     time.Duration
	Retries    int
}

// Browser wraps a single headless Chromium instance. Each Fetch runs in
// its own tab with its own deadline; the instance itself lives for the
// whole run.
type Browser struct {
	opts        Options
	allocCancel context.CancelFunc
	browserCtx  context.Context
	browserStop context.CancelFunc
}

// New launches headless Chromium. Close must be called to release it.
func New(ctx context.Context, opts Options) (*Browser, error) {
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = 30 * time.Second
	}
	if opts.Retries <= 0 {
		opts.Retries = 1
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1920, 1080),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, browserStop := chromedp.NewContext(allocCtx)

	// Run a no-op action so the browser process starts now; a broken
	// Chromium install surfaces here instead of on the first page.
	if err := chromedp.Run(browserCtx); err != nil {
		browserStop()
		allocCancel()
		return nil, fmt.Errorf("launch headless browser: %w", err)
	}

	return &Browser{
		opts:        opts,
		allocCancel: allocCancel,
		browserCtx:  browserCtx,
		browserStop: browserStop,
	}, nil
}

// Close shuts the browser down.
func (b *Browser) Close() {
	b.browserStop()
	b.allocCancel()
}

// Fetch navigates to url and returns the rendered document HTML along
// with the time the page took to load. It retries transient failures up
// to Options.Retries times with a linear backoff.
func (b *Browser) Fetch(ctx context.Context, url string) (string, time.Duration, error) {
	var lastErr error
	for attempt := 1; attempt <= b.opts.Retries; attempt++ {
		html, loadTime, err := b.fetchOnce(ctx, url)
		if err == nil {
			return html, loadTime, nil
		}
		lastErr = err

		if attempt < b.opts.Retries {
			log.Warnf("fetch %s failed (attempt %d/%d): %v", url, attempt, b.opts.Retries, err)
			select {
			case <-ctx.Done():
				return "", 0, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
	}
	return "", 0, fmt.Errorf("fetch %s after %d attempts: %w", url, b.opts.Retries, lastErr)
}

func (b *Browser) fetchOnce(ctx context.Context, url string) (string, time.Duration, error) {
	// Fresh tab per page so a wedged renderer cannot poison later fetches.
	tabCtx, closeTab := chromedp.NewContext(b.browserCtx)
	defer closeTab()

	tabCtx, cancel := context.WithTimeout(tabCtx, b.opts.NavTimeout)
	defer cancel()

	// Stop waiting early if the caller's context dies.
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-tabCtx.Done():
		}
	}()

	actions := []chromedp.Action{
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{
			"Accept-Language": "en-US,en;q=0.9",
		}),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if b.opts.Settle > 0 {
		actions = append(actions, chromedp.Sleep(b.opts.Settle))
	}

	var html string
	actions = append(actions, chromedp.OuterHTML("html", &html, chromedp.ByQuery))

	start := time.Now()
	if err := chromedp.Run(tabCtx, actions...); err != nil {
		return "", 0, err
	}
	return html, time.Since(start), nil
}
