package scraper

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/gocolly/colly/v2"

	"docscrape/internal/browser"
	"docscrape/pkg/models"
)

// The three documentation portals publish articles under fixed URL
// shapes; anything else on the landing page is navigation chrome.
var articleRules = []struct {
	re     *regexp.Regexp
	source models.Source
}{
	{regexp.MustCompile(`^https://help\.moengage\.com/hc/en-us/articles/\d+-`), models.Help},
	{regexp.MustCompile(`^https://developers\.moengage\.com/hc/en-us/articles/\d+-`), models.Developers},
	{regexp.MustCompile(`^https://partners\.moengage\.com/hc/en-us/articles/\d+-`), models.Partners},
}

// Category and section index pages worth following during deep discovery.
var indexPageRe = regexp.MustCompile(`/hc/en-us/(categories|sections)/`)

func classify(href string) (models.Source, bool) {
	for _, rule := range articleRules {
		if rule.re.MatchString(href) {
			return rule.source, true
		}
	}
	return models.None, false
}

// Anchor is a raw <a> tag lifted from a page.
type Anchor struct {
	Href string
	Text string
}

// CollectArticleLinks keeps anchors pointing at documentation articles,
// classifies them by portal and dedupes by URL in first-seen order.
func CollectArticleLinks(anchors []Anchor) []models.Link {
	var links []models.Link
	seen := newSeenSet()

	for _, a := range anchors {
		source, ok := classify(a.Href)
		if !ok || seen.Seen(a.Href) {
			continue
		}
		links = append(links, models.Link{
			URL:    a.Href,
			Title:  strings.TrimSpace(a.Text),
			Source: source.String(),
		})
	}
	return links
}

// DiscoverLinks loads the help-center landing page in the headless
// browser and collects every documentation article link on it.
func DiscoverLinks(ctx context.Context, b *browser.Browser, baseURL string) ([]models.Link, error) {
	landing := landingURL(baseURL)

	pageHTML, _, err := b.Fetch(ctx, landing)
	if err != nil {
		return nil, fmt.Errorf("load landing page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("parse landing page: %w", err)
	}

	var anchors []Anchor
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if abs := resolveURL(landing, href); abs != "" {
			anchors = append(anchors, Anchor{Href: abs, Text: s.Text()})
		}
	})

	links := CollectArticleLinks(anchors)
	log.Infof("found %d unique documentation articles on landing page", len(links))
	return links, nil
}

// DeepDiscoverLinks crawls category and section index pages with a
// rate-limited collector, picking up article links the landing page
// does not carry. Links already in seed are not reported again.
func DeepDiscoverLinks(baseURL string, interval time.Duration, userAgent string, seed []models.Link) ([]models.Link, error) {
	landing := landingURL(baseURL)

	base, err := url.Parse(landing)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	domains := []string{
		base.Hostname(),
		"help.moengage.com",
		"developers.moengage.com",
		"partners.moengage.com",
	}

	c := colly.NewCollector(
		colly.AllowedDomains(domains...),
		colly.MaxDepth(3),
		colly.UserAgent(userAgent),
		colly.Async(true),
	)
	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 2,
		Delay:       interval,
	})

	seen := newSeenSet()
	for _, l := range seed {
		seen.Seen(l.URL)
	}

	var mu sync.Mutex
	var links []models.Link

	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		link := e.Request.AbsoluteURL(e.Attr("href"))
		if link == "" {
			return
		}

		if source, ok := classify(link); ok {
			if !seen.Seen(link) {
				mu.Lock()
				links = append(links, models.Link{
					URL:    link,
					Title:  strings.TrimSpace(e.Text),
					Source: source.String(),
				})
				mu.Unlock()
			}
			return
		}

		if indexPageRe.MatchString(link) {
			e.Request.Visit(link)
		}
	})
	c.OnError(func(r *colly.Response, err error) {
		log.Warnf("deep discovery: %s: %v", r.Request.URL, err)
	})

	if err := c.Visit(landing); err != nil {
		return nil, fmt.Errorf("visit landing page: %w", err)
	}
	c.Wait()

	log.Infof("deep discovery found %d additional articles", len(links))
	return links, nil
}

func landingURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/hc/en-us"
}

// Utility to resolve relative URLs (e.g. "/about" -> "https://site.com/about")
func resolveURL(base, href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(u).String()
}
